// internal/models/material_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		min     float64
		want    StockStatus
	}{
		{"well stocked", 50, 5, StockStatusInStock},
		{"exactly at minimum", 5, 5, StockStatusLowStock},
		{"below minimum", 3, 5, StockStatusLowStock},
		{"empty", 0, 5, StockStatusOutOfStock},
		{"just above minimum", 5.01, 5, StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Material{CurrentStock: tt.current, MinStockLevel: tt.min}
			assert.Equal(t, tt.want, m.StockStatus())
		})
	}
}

func TestStockMovementDelta(t *testing.T) {
	tests := []struct {
		movementType MovementType
		quantity     float64
		want         float64
	}{
		{MovementTypeIn, 10, 10},
		{MovementTypeReturn, 4, 4},
		{MovementTypeOut, 7, -7},
		{MovementTypeAdjustment, 2.5, -2.5},
	}

	for _, tt := range tests {
		m := StockMovement{MovementType: tt.movementType, Quantity: tt.quantity}
		assert.Equal(t, tt.want, m.StockDelta(), "%s", tt.movementType)
	}
}

func TestIsValidMovementType(t *testing.T) {
	assert.True(t, IsValidMovementType(MovementTypeIn))
	assert.True(t, IsValidMovementType(MovementTypeOut))
	assert.True(t, IsValidMovementType(MovementTypeAdjustment))
	assert.True(t, IsValidMovementType(MovementTypeReturn))
	assert.False(t, IsValidMovementType(MovementType("transfer")))
	assert.False(t, IsValidMovementType(MovementType("")))
}
