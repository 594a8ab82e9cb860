// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/config"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}

type RefundRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Amount  float64   `json:"amount,omitempty"`
	Reason  string    `json:"reason" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreatePaymentIntent opens a card payment for an order the caller owns.
func (s *PaymentService) CreatePaymentIntent(caller access.Identity, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, errors.New("order is already paid")
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, errors.New("cannot pay for a cancelled order")
	}

	// Convert amount to cents for Stripe
	amountInCents := int64(order.TotalPrice * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", caller.UserID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Amount:       order.TotalPrice,
		Currency:     s.config.Payment.Currency,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the intent with Stripe and marks the order paid
// when the charge succeeded.
func (s *PaymentService) ConfirmPayment(caller access.Identity, req *ConfirmPaymentRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	// Get payment intent from Stripe
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		updates := map[string]interface{}{
			"payment_status":    models.PaymentStatusPaid,
			"payment_reference": pi.ID,
		}
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		// Still pending on the client side; nothing to record yet

	default:
		return nil, fmt.Errorf("payment not completed: %s", pi.Status)
	}

	s.db.First(&order, order.ID)
	return &order, nil
}

// ProcessRefund refunds a paid order through Stripe. Admin only.
func (s *PaymentService) ProcessRefund(caller access.Identity, req *RefundRequest) (*models.Order, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		return nil, errors.New("can only refund paid orders")
	}

	// Calculate refund amount
	refundAmount := req.Amount
	if refundAmount <= 0 || refundAmount > order.TotalPrice {
		refundAmount = order.TotalPrice
	}

	// Card payments go back through Stripe; cash and transfer refunds
	// are settled outside the platform and only recorded here
	if order.PaymentMethod == models.PaymentMethodCard && order.PaymentReference != "" {
		refundAmountCents := int64(refundAmount * 100)
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(order.PaymentReference),
			Amount:        stripe.Int64(refundAmountCents),
			Reason:        stripe.String("requested_by_customer"),
		}

		if _, err := refund.New(params); err != nil {
			return nil, fmt.Errorf("failed to process refund: %w", err)
		}
	}

	if err := s.db.Model(&order).Update("payment_status", models.PaymentStatusRefunded).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.db.First(&order, order.ID)
	return &order, nil
}

// RecordOfflinePayment marks transfer or cash orders as paid once the
// money is confirmed out of band. Admin only.
func (s *PaymentService) RecordOfflinePayment(caller access.Identity, orderID uuid.UUID, reference string) (*models.Order, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.PaymentMethod == models.PaymentMethodCard {
		return nil, errors.New("card payments are confirmed through the payment provider")
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, errors.New("order is already paid")
	}

	updates := map[string]interface{}{
		"payment_status":    models.PaymentStatusPaid,
		"payment_reference": reference,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.db.First(&order, order.ID)
	return &order, nil
}

// GetPaymentHistory lists the caller's paid and refunded orders.
func (s *PaymentService) GetPaymentHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Where("user_id = ? AND payment_status IN ?", userID,
			[]models.PaymentStatus{models.PaymentStatusPaid, models.PaymentStatusRefunded}).
		Preload("Model").Preload("Workshop")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_price", "payment_status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}

	return orders, total, nil
}
