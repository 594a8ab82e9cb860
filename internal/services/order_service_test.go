// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

func TestCreateOrderStartsPendingWithAuditRow(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, model.Price, order.TotalPrice)
	assert.False(t, order.EstimatedDelivery.IsZero())

	var updates []models.OrderStatusUpdate
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&updates).Error)
	require.Len(t, updates, 1)
	assert.Equal(t, models.OrderStatusPending, updates[0].Status)
}

func TestCreateOrderRejectsForeignMeasurement(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	_, _, workshop, model, measurement := createOrderFixture(t, db)

	other := createTestUser(t, db, models.UserTypeClient)

	_, err := service.CreateOrder(identityFor(other), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateStatusWalksTheFullLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	for _, status := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusInProgress,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	} {
		order, err = service.UpdateStatus(admin, order.ID, &UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, order.Status)
	}

	// Delivery stamps the actual date
	assert.NotNil(t, order.ActualDelivery)

	// One audit row per step, oldest first
	history, err := service.GetStatusHistory(admin, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, models.OrderStatusPending, history[0].Status)
	assert.Equal(t, models.OrderStatusDelivered, history[4].Status)
}

func TestUpdateStatusRejectsSkippedSteps(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	for _, status := range []models.OrderStatus{
		models.OrderStatusInProgress,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	} {
		_, err := service.UpdateStatus(admin, order.ID, &UpdateOrderStatusRequest{Status: status})
		assert.ErrorIs(t, err, ErrInvalidTransition, "pending -> %s", status)
	}

	_, err = service.UpdateStatus(admin, order.ID, &UpdateOrderStatusRequest{Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestClientsCannotAdvanceStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = service.UpdateStatus(identityFor(client), order.ID, &UpdateOrderStatusRequest{
		Status: models.OrderStatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAssignedWorkshopAdvancesItsOrders(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, workshopUser, workshop, model, measurement := createOrderFixture(t, db)

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodTransfer,
	})
	require.NoError(t, err)

	order, err = service.UpdateStatus(identityFor(workshopUser), order.ID, &UpdateOrderStatusRequest{
		Status: models.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	// A different workshop account gets nothing
	otherWorkshopUser := createTestUser(t, db, models.UserTypeWorkshop)
	otherWorkshop := &models.Workshop{UserID: otherWorkshopUser.ID, Name: "Atelier Ba", IsActive: true}
	require.NoError(t, db.Create(otherWorkshop).Error)

	_, err = service.UpdateStatus(identityFor(otherWorkshopUser), order.ID, &UpdateOrderStatusRequest{
		Status: models.OrderStatusInProgress,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCancelOrderOnlyWhileEarly(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	// Cancelling while pending works and records the reason
	cancelled, err := service.CancelOrder(identityFor(client), order.ID, &CancelOrderRequest{
		Reason: "changed my mind",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "changed my mind", cancelled.CancellationReason)

	// A second order advanced past confirmed can no longer be cancelled
	order2, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = service.UpdateStatus(admin, order2.ID, &UpdateOrderStatusRequest{Status: models.OrderStatusConfirmed})
	require.NoError(t, err)
	_, err = service.UpdateStatus(admin, order2.ID, &UpdateOrderStatusRequest{Status: models.OrderStatusInProgress})
	require.NoError(t, err)

	_, err = service.CancelOrder(identityFor(client), order2.ID, &CancelOrderRequest{Reason: "too late now"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelOrderRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, _, workshop, model, measurement := createOrderFixture(t, db)

	order, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	stranger := createTestUser(t, db, models.UserTypeClient)
	_, err = service.CancelOrder(identityFor(stranger), order.ID, &CancelOrderRequest{Reason: "not mine"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListOrdersAppliesRoleScope(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db, nil)
	client, workshopUser, workshop, model, measurement := createOrderFixture(t, db)
	admin := identityFor(createTestUser(t, db, models.UserTypeAdmin))

	// One order for the fixture client, one for a second client at the
	// same workshop
	_, err := service.CreateOrder(identityFor(client), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	other := createTestUser(t, db, models.UserTypeClient)
	otherMeasurement := &models.Measurement{
		UserID:          other.ID,
		Name:            "Other size",
		MeasurementType: models.MeasurementTypeStandard,
		StandardSize:    "L",
	}
	require.NoError(t, db.Create(otherMeasurement).Error)

	_, err = service.CreateOrder(identityFor(other), &CreateOrderRequest{
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: otherMeasurement.ID,
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	params := OrderSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	}

	_, total, err := service.ListOrders(admin, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = service.ListOrders(identityFor(client), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// The workshop sees every order assigned to it
	_, total, err = service.ListOrders(identityFor(workshopUser), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
