// internal/services/inventory_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

func TestAddStockIncreasesCurrentStock(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 10, 5)

	movement, err := service.AddStock(admin, material.ID, &StockChangeRequest{
		Quantity:  5,
		Reference: "PO-2041",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MovementTypeIn, movement.MovementType)

	var updated models.Material
	require.NoError(t, db.First(&updated, material.ID).Error)
	assert.Equal(t, 15.0, updated.CurrentStock)
	assert.Equal(t, models.StockStatusInStock, updated.StockStatus())
}

func TestRemoveStockRejectsInsufficientQuantity(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 10, 5)

	_, err := service.RemoveStock(admin, material.ID, &StockChangeRequest{Quantity: 20})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The rejected movement must leave no trace
	var updated models.Material
	require.NoError(t, db.First(&updated, material.ID).Error)
	assert.Equal(t, 10.0, updated.CurrentStock)

	var count int64
	db.Model(&models.StockMovement{}).Where("material_id = ?", material.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRemoveStockCrossesIntoLowStock(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 15, 5)

	_, err := service.RemoveStock(admin, material.ID, &StockChangeRequest{Quantity: 12})
	require.NoError(t, err)

	var updated models.Material
	require.NoError(t, db.First(&updated, material.ID).Error)
	assert.Equal(t, 3.0, updated.CurrentStock)
	assert.Equal(t, models.StockStatusLowStock, updated.StockStatus())
}

func TestApplyMovementRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 10, 5)

	for _, quantity := range []float64{0, -5} {
		_, err := service.ApplyMovement(admin, material.ID, &StockMovementRequest{
			MovementType: models.MovementTypeIn,
			Quantity:     quantity,
		})
		assert.Error(t, err)
	}
}

func TestApplyMovementRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 10, 5)

	_, err := service.ApplyMovement(admin, material.ID, &StockMovementRequest{
		MovementType: models.MovementType("transfer"),
		Quantity:     1,
	})
	assert.Error(t, err)
}

func TestApplyMovementRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	client := identityFor(createTestUser(t, db, models.UserTypeClient))

	material := createTestMaterial(t, db, 10, 5)

	_, err := service.AddStock(client, material.ID, &StockChangeRequest{Quantity: 5})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestReturnAndAdjustmentDirections(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	material := createTestMaterial(t, db, 10, 2)

	// A return adds stock back
	_, err := service.ApplyMovement(admin, material.ID, &StockMovementRequest{
		MovementType: models.MovementTypeReturn,
		Quantity:     4,
	})
	require.NoError(t, err)

	// An adjustment subtracts
	_, err = service.ApplyMovement(admin, material.ID, &StockMovementRequest{
		MovementType: models.MovementTypeAdjustment,
		Quantity:     6,
		Notes:        "yearly count correction",
	})
	require.NoError(t, err)

	var updated models.Material
	require.NoError(t, db.First(&updated, material.ID).Error)
	assert.Equal(t, 8.0, updated.CurrentStock)
}

func TestListMovementsIsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))
	client := identityFor(createTestUser(t, db, models.UserTypeClient))

	material := createTestMaterial(t, db, 10, 5)

	_, err := service.AddStock(admin, material.ID, &StockChangeRequest{Quantity: 5})
	require.NoError(t, err)
	_, err = service.RemoveStock(admin, material.ID, &StockChangeRequest{Quantity: 3})
	require.NoError(t, err)

	params := StockMovementSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "asc"},
	}

	movements, total, err := service.ListMovements(admin, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, movements, 2)

	// Everyone else gets an empty page, not an error
	movements, total, err = service.ListMovements(client, params)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, movements)
}

func TestCreateMaterialRecordsInitialStockThroughLedger(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	supplier := &models.Supplier{Name: "Dakar Textiles", IsActive: true}
	require.NoError(t, db.Create(supplier).Error)
	category := &models.MaterialCategory{Name: "Linings"}
	require.NoError(t, db.Create(category).Error)

	material, err := service.CreateMaterial(admin, &CreateMaterialRequest{
		Name:          "Silk Lining",
		CategoryID:    category.ID,
		SupplierID:    supplier.ID,
		Unit:          "m",
		UnitPrice:     8,
		MinStockLevel: 10,
		InitialStock:  25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, material.CurrentStock)
	assert.NotEmpty(t, material.SKU)

	var movements []models.StockMovement
	require.NoError(t, db.Where("material_id = ?", material.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, models.MovementTypeIn, movements[0].MovementType)
	assert.Equal(t, 25.0, movements[0].Quantity)
	assert.Equal(t, "initial-stock", movements[0].Reference)
}

func TestSearchMaterialsByStockStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)

	createTestMaterial(t, db, 0, 5)  // out of stock
	createTestMaterial(t, db, 3, 5)  // low
	createTestMaterial(t, db, 50, 5) // in stock

	for _, tt := range []struct {
		status models.StockStatus
		want   int64
	}{
		{models.StockStatusOutOfStock, 1},
		{models.StockStatusLowStock, 1},
		{models.StockStatusInStock, 1},
	} {
		status := tt.status
		_, total, err := service.SearchMaterials(MaterialSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
			StockStatus:      &status,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, total, "status %s", status)
	}
}

func TestGetLowStockMaterials(t *testing.T) {
	db := setupTestDB(t)
	service := NewInventoryService(db)

	createTestMaterial(t, db, 3, 5)
	createTestMaterial(t, db, 0, 5)
	createTestMaterial(t, db, 50, 5)

	materials, err := service.GetLowStockMaterials()
	require.NoError(t, err)
	assert.Len(t, materials, 2)
}
