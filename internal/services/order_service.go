// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateOrderRequest struct {
	ModelID       uuid.UUID            `json:"model_id" validate:"required"`
	WorkshopID    uuid.UUID            `json:"workshop_id" validate:"required"`
	MeasurementID uuid.UUID            `json:"measurement_id" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required"`
	Notes         string               `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
	Notes  string             `json:"notes,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status        *models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus *models.PaymentStatus `json:"payment_status,omitempty"`
	WorkshopID    *uuid.UUID            `json:"workshop_id,omitempty"`
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *OrderService) CreateOrder(caller access.Identity, req *CreateOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify the clothing model exists and is orderable
	var model models.ClothingModel
	if err := s.db.First(&model, req.ModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("clothing model: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !model.IsActive {
		return nil, errors.New("clothing model is not available")
	}

	// Verify the workshop exists and is active
	var workshop models.Workshop
	if err := s.db.First(&workshop, req.WorkshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workshop: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !workshop.IsActive {
		return nil, errors.New("workshop is not accepting orders")
	}

	// The measurement set must belong to the buyer
	var measurement models.Measurement
	if err := s.db.First(&measurement, req.MeasurementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("measurement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if measurement.UserID != caller.UserID {
		return nil, ErrPermissionDenied
	}

	// Delivery estimate: model production time plus workshop lead time
	estimatedDays := model.EstimatedDays + workshop.EstimatedDeliveryDays
	if estimatedDays <= 0 {
		estimatedDays = 14
	}

	order := &models.Order{
		UserID:            caller.UserID,
		ModelID:           req.ModelID,
		WorkshopID:        req.WorkshopID,
		MeasurementID:     req.MeasurementID,
		Status:            models.OrderStatusPending,
		TotalPrice:        model.Price,
		EstimatedDelivery: time.Now().AddDate(0, 0, estimatedDays),
		Notes:             req.Notes,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// First audit row records the initial status
		update := &models.OrderStatusUpdate{
			OrderID:   order.ID,
			Status:    models.OrderStatusPending,
			Notes:     "Order placed",
			CreatedBy: &caller.UserID,
		}
		if err := tx.Create(update).Error; err != nil {
			return fmt.Errorf("failed to record status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Load relationships for the response
	s.db.Preload("Model").Preload("Workshop").Preload("Measurement").First(order, order.ID)

	if s.notificationService != nil {
		go s.notificationService.SendOrderConfirmation(order)
	}

	return order, nil
}

func (s *OrderService) GetOrder(caller access.Identity, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Model").Preload("Model.Images").
		Preload("Workshop").Preload("Measurement").
		Preload("StatusUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !s.canViewOrder(caller, &order) {
		return nil, ErrPermissionDenied
	}

	return &order, nil
}

// ListOrders applies the role-based scope: admins see everything,
// workshop accounts see orders assigned to them, clients their own.
func (s *OrderService) ListOrders(caller access.Identity, params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Preload("Model").Preload("Workshop")

	switch access.Decide(caller.Role, access.ResourceOrders) {
	case access.AllowAll:
		// no scope
	case access.AllowOwn:
		if caller.Role == models.UserTypeWorkshop {
			workshopID, err := s.workshopIDForUser(caller.UserID)
			if err != nil {
				return []models.Order{}, 0, nil
			}
			query = query.Where("workshop_id = ?", workshopID)
		} else {
			query = query.Where("user_id = ?", caller.UserID)
		}
	default:
		return []models.Order{}, 0, nil
	}

	// Apply filters
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.WorkshopID != nil {
		query = query.Where("workshop_id = ?", *params.WorkshopID)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "status", "total_price", "estimated_delivery"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus moves an order along the allowed graph and appends one
// audit row in the same transaction. Admins and the assigned workshop
// may advance status; clients cancel through CancelOrder.
func (s *OrderService) UpdateStatus(caller access.Identity, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.IsValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.Status)
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !s.canManageOrder(caller, &order) {
		return nil, ErrPermissionDenied
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, req.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": req.Status}
		if req.Status == models.OrderStatusDelivered {
			now := time.Now()
			updates["actual_delivery"] = &now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		update := &models.OrderStatusUpdate{
			OrderID:   order.ID,
			Status:    req.Status,
			Notes:     req.Notes,
			CreatedBy: &caller.UserID,
		}
		if err := tx.Create(update).Error; err != nil {
			return fmt.Errorf("failed to record status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.db.Preload("Model").Preload("Workshop").First(&order, order.ID)

	if s.notificationService != nil {
		go s.notificationService.SendOrderStatusUpdate(&order)
	}

	return &order, nil
}

// CancelOrder lets the owning client (or an admin) cancel while the
// order is still pending or confirmed.
func (s *OrderService) CancelOrder(caller access.Identity, orderID uuid.UUID, req *CancelOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if !order.Status.CanCancel() {
		return nil, ErrCannotCancel
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":              models.OrderStatusCancelled,
			"cancellation_reason": req.Reason,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		update := &models.OrderStatusUpdate{
			OrderID:   order.ID,
			Status:    models.OrderStatusCancelled,
			Notes:     req.Reason,
			CreatedBy: &caller.UserID,
		}
		if err := tx.Create(update).Error; err != nil {
			return fmt.Errorf("failed to record status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.db.First(&order, order.ID)

	return &order, nil
}

// GetStatusHistory returns the append-only trail, oldest first.
func (s *OrderService) GetStatusHistory(caller access.Identity, orderID uuid.UUID) ([]models.OrderStatusUpdate, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !s.canViewOrder(caller, &order) {
		return nil, ErrPermissionDenied
	}

	var updates []models.OrderStatusUpdate
	if err := s.db.Where("order_id = ?", orderID).
		Preload("Creator").
		Order("created_at ASC").
		Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch status history: %w", err)
	}

	return updates, nil
}

func (s *OrderService) canViewOrder(caller access.Identity, order *models.Order) bool {
	if access.CanView(caller, access.ResourceOrders, order.UserID) {
		return true
	}
	// The assigned workshop also sees the order
	if caller.Role == models.UserTypeWorkshop {
		workshopID, err := s.workshopIDForUser(caller.UserID)
		if err == nil && workshopID == order.WorkshopID {
			return true
		}
	}
	return false
}

func (s *OrderService) canManageOrder(caller access.Identity, order *models.Order) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.Role == models.UserTypeWorkshop {
		workshopID, err := s.workshopIDForUser(caller.UserID)
		return err == nil && workshopID == order.WorkshopID
	}
	return false
}

func (s *OrderService) workshopIDForUser(userID uuid.UUID) (uuid.UUID, error) {
	var workshop models.Workshop
	if err := s.db.Select("id").Where("user_id = ?", userID).First(&workshop).Error; err != nil {
		return uuid.Nil, err
	}
	return workshop.ID, nil
}
