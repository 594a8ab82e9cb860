// internal/services/testing_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/models"
)

// setupTestDB opens a fresh in-memory database per test. The unique DSN
// keeps parallel tests from sharing state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workshop{},
		&models.WorkshopImage{},
		&models.Review{},
		&models.ClothingModel{},
		&models.ModelImage{},
		&models.Measurement{},
		&models.Order{},
		&models.OrderStatusUpdate{},
		&models.Supplier{},
		&models.MaterialCategory{},
		&models.Material{},
		&models.StockMovement{},
		&models.MaterialImage{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	user := &models.User{
		Username: "user_" + suffix,
		Email:    fmt.Sprintf("user_%s@example.com", suffix),
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)

	return user
}

func identityFor(user *models.User) access.Identity {
	return access.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.UserType,
	}
}

// createTestMaterial seeds a supplier, a category and one material with
// the given stock levels.
func createTestMaterial(t *testing.T, db *gorm.DB, currentStock, minStockLevel float64) *models.Material {
	t.Helper()

	supplier := &models.Supplier{Name: "Textile Import SARL", IsActive: true}
	require.NoError(t, db.Create(supplier).Error)

	category := &models.MaterialCategory{Name: "Fabrics"}
	require.NoError(t, db.Create(category).Error)

	material := &models.Material{
		Name:          "Wax Print Cotton",
		SKU:           "MAT-" + uuid.New().String()[:8],
		CategoryID:    category.ID,
		SupplierID:    supplier.ID,
		Unit:          "m",
		UnitPrice:     12.5,
		MinStockLevel: minStockLevel,
		CurrentStock:  currentStock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(material).Error)

	return material
}

// createOrderFixture seeds everything an order needs: a client with a
// measurement set, a workshop account with its profile, and an active
// clothing model.
func createOrderFixture(t *testing.T, db *gorm.DB) (client *models.User, workshopUser *models.User, workshop *models.Workshop, model *models.ClothingModel, measurement *models.Measurement) {
	t.Helper()

	client = createTestUser(t, db, models.UserTypeClient)
	workshopUser = createTestUser(t, db, models.UserTypeWorkshop)

	workshop = &models.Workshop{
		UserID:                workshopUser.ID,
		Name:                  "Atelier Ndiaye",
		EstimatedDeliveryDays: 7,
		IsActive:              true,
	}
	require.NoError(t, db.Create(workshop).Error)

	model = &models.ClothingModel{
		Name:          "Classic Boubou",
		Category:      models.ClothingCategoryDress,
		Price:         150,
		EstimatedDays: 5,
		IsActive:      true,
	}
	require.NoError(t, db.Create(model).Error)

	measurement = &models.Measurement{
		UserID:          client.ID,
		Name:            "My size",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "M",
	}
	require.NoError(t, db.Create(measurement).Error)

	return client, workshopUser, workshop, model, measurement
}
