// internal/models/material.go
package models

import (
	"github.com/google/uuid"
)

type Supplier struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null"`
	ContactName string `json:"contact_name" gorm:"size:100"`
	Email       string `json:"email" gorm:"size:255"`
	Phone       string `json:"phone" gorm:"size:20"`
	Address     string `json:"address" gorm:"type:text"`
	Notes       string `json:"notes" gorm:"type:text"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

type MaterialCategory struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"type:text"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`

	// Relationships
	Parent   *MaterialCategory  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []MaterialCategory `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// Units accepted for materials.
var MaterialUnits = []string{"m", "cm", "kg", "g", "pcs", "roll", "sheet"}

func IsValidMaterialUnit(unit string) bool {
	for _, u := range MaterialUnits {
		if u == unit {
			return true
		}
	}
	return false
}

type Material struct {
	BaseModel
	Name          string    `json:"name" gorm:"size:100;not null"`
	SKU           string    `json:"sku" gorm:"uniqueIndex;size:50;not null"`
	CategoryID    uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	Description   string    `json:"description" gorm:"type:text"`
	Unit          string    `json:"unit" gorm:"size:10;not null"`
	UnitPrice     float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	SupplierID    uuid.UUID `json:"supplier_id" gorm:"type:uuid;not null;index"`
	MinStockLevel float64   `json:"min_stock_level" gorm:"type:decimal(10,2);default:0"`
	CurrentStock  float64   `json:"current_stock" gorm:"type:decimal(10,2);default:0"`
	Location      string    `json:"location" gorm:"size:100"`
	Color         string    `json:"color" gorm:"size:50"`
	Width         *float64  `json:"width" gorm:"type:decimal(6,2)"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`

	// Relationships
	Category  MaterialCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Supplier  Supplier         `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Movements []StockMovement  `json:"movements,omitempty" gorm:"foreignKey:MaterialID"`
	Images    []MaterialImage  `json:"images,omitempty" gorm:"foreignKey:MaterialID"`
}

// StockStatus classifies the current stock against the minimum level.
func (m *Material) StockStatus() StockStatus {
	switch {
	case m.CurrentStock <= 0:
		return StockStatusOutOfStock
	case m.CurrentStock <= m.MinStockLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockMovement is one inventory transaction against a material. Rows are
// immutable once created; the material's current_stock is updated in the
// same transaction that inserts the row.
type StockMovement struct {
	BaseModel
	MaterialID   uuid.UUID    `json:"material_id" gorm:"type:uuid;not null;index"`
	MovementType MovementType `json:"movement_type" gorm:"type:varchar(20);not null;index"`
	Quantity     float64      `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice    *float64     `json:"unit_price" gorm:"type:decimal(10,2)"`
	Reference    string       `json:"reference" gorm:"size:100"`
	Notes        string       `json:"notes" gorm:"type:text"`
	CreatedBy    *uuid.UUID   `json:"created_by" gorm:"type:uuid"`

	// Relationships
	Material Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
	Creator  *User    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// StockDelta is the signed effect of this movement on current stock.
func (m *StockMovement) StockDelta() float64 {
	switch m.MovementType {
	case MovementTypeIn, MovementTypeReturn:
		return m.Quantity
	case MovementTypeOut, MovementTypeAdjustment:
		return -m.Quantity
	}
	return 0
}

func IsValidMovementType(t MovementType) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

type MaterialImage struct {
	BaseModel
	MaterialID uuid.UUID `json:"material_id" gorm:"type:uuid;not null;index"`
	ImageURL   string    `json:"image_url" gorm:"size:500;not null"`
	IsPreview  bool      `json:"is_preview" gorm:"default:false"`
	Position   int       `json:"position" gorm:"default:0"`
}
