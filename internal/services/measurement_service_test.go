// internal/services/measurement_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

func TestCreateMeasurementValidatesByType(t *testing.T) {
	db := setupTestDB(t)
	service := NewMeasurementService(db)
	user := createTestUser(t, db, models.UserTypeClient)

	// Standard sets need a known size code
	_, err := service.CreateMeasurement(user.ID, &CreateMeasurementRequest{
		Name:            "Work suit",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "XXXL",
	})
	assert.Error(t, err)

	measurement, err := service.CreateMeasurement(user.ID, &CreateMeasurementRequest{
		Name:            "Work suit",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "L",
	})
	require.NoError(t, err)
	assert.Equal(t, "L", measurement.StandardSize)

	// Custom sets need at least one value
	_, err = service.CreateMeasurement(user.ID, &CreateMeasurementRequest{
		Name:            "Wedding outfit",
		MeasurementType: models.MeasurementTypeCustom,
	})
	assert.Error(t, err)

	_, err = service.CreateMeasurement(user.ID, &CreateMeasurementRequest{
		Name:            "Wedding outfit",
		MeasurementType: models.MeasurementTypeCustom,
		CustomMeasurements: map[string]interface{}{
			"chest": 102.0,
			"waist": 88.0,
		},
	})
	require.NoError(t, err)
}

func TestListMeasurementsIsScopedToCaller(t *testing.T) {
	db := setupTestDB(t)
	service := NewMeasurementService(db)
	owner := createTestUser(t, db, models.UserTypeClient)
	other := createTestUser(t, db, models.UserTypeClient)

	_, err := service.CreateMeasurement(owner.ID, &CreateMeasurementRequest{
		Name:            "Everyday",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "M",
	})
	require.NoError(t, err)

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}

	_, total, err := service.ListMeasurements(identityFor(owner), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = service.ListMeasurements(identityFor(other), params)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestGetMeasurementEnforcesOwnership(t *testing.T) {
	db := setupTestDB(t)
	service := NewMeasurementService(db)
	owner := createTestUser(t, db, models.UserTypeClient)
	stranger := createTestUser(t, db, models.UserTypeClient)
	admin := createTestUser(t, db, models.UserTypeAdmin)

	measurement, err := service.CreateMeasurement(owner.ID, &CreateMeasurementRequest{
		Name:            "Everyday",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "S",
	})
	require.NoError(t, err)

	_, err = service.GetMeasurement(identityFor(owner), measurement.ID)
	assert.NoError(t, err)

	_, err = service.GetMeasurement(identityFor(stranger), measurement.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Admins get no exception; measurement records belong to the user
	_, err = service.GetMeasurement(identityFor(admin), measurement.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
