// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID             uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ModelID            uuid.UUID     `json:"model_id" gorm:"type:uuid;not null;index"`
	WorkshopID         uuid.UUID     `json:"workshop_id" gorm:"type:uuid;not null;index"`
	MeasurementID      uuid.UUID     `json:"measurement_id" gorm:"type:uuid;not null"`
	Status             OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	TotalPrice         float64       `json:"total_price" gorm:"type:decimal(10,2);not null"`
	EstimatedDelivery  time.Time     `json:"estimated_delivery"`
	ActualDelivery     *time.Time    `json:"actual_delivery"`
	Notes              string        `json:"notes" gorm:"type:text"`
	PaymentStatus      PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod      PaymentMethod `json:"payment_method" gorm:"type:varchar(10)"`
	PaymentReference   string        `json:"payment_reference" gorm:"size:100"`
	TrackingNumber     string        `json:"tracking_number" gorm:"size:100"`
	CancellationReason string        `json:"cancellation_reason" gorm:"type:text"`

	// Relationships
	User          User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Model         ClothingModel       `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	Workshop      Workshop            `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
	Measurement   Measurement         `json:"measurement,omitempty" gorm:"foreignKey:MeasurementID"`
	StatusUpdates []OrderStatusUpdate `json:"status_updates,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderStatusUpdate is one append-only audit row per status change.
// Rows are never mutated or deleted.
type OrderStatusUpdate struct {
	BaseModel
	OrderID   uuid.UUID   `json:"order_id" gorm:"type:uuid;not null;index"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20);not null"`
	Notes     string      `json:"notes" gorm:"type:text"`
	CreatedBy *uuid.UUID  `json:"created_by" gorm:"type:uuid"`

	// Relationships
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// orderTransitions encodes the allowed status graph:
// pending -> confirmed -> in_progress -> ready -> delivered,
// with cancelled reachable only from pending or confirmed.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReady},
	OrderStatusReady:      {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanCancel reports whether an order in this status may still be cancelled.
func (s OrderStatus) CanCancel() bool {
	return s.CanTransitionTo(OrderStatusCancelled)
}

func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
