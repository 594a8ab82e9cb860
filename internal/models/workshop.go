// internal/models/workshop.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Workshop struct {
	BaseModel
	UserID                uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name                  string         `json:"name" gorm:"size:100;not null"`
	Description           string         `json:"description" gorm:"type:text"`
	LogoURL               string         `json:"logo_url" gorm:"size:500"`
	Address               string         `json:"address" gorm:"size:200"`
	Phone                 string         `json:"phone" gorm:"size:20"`
	Rating                float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Specialties           pq.StringArray `json:"specialties" gorm:"type:text[]"`
	EstimatedDeliveryDays int            `json:"estimated_delivery_days" gorm:"default:0"`
	PriceRangeMin         float64        `json:"price_range_min" gorm:"type:decimal(10,2)"`
	PriceRangeMax         float64        `json:"price_range_max" gorm:"type:decimal(10,2)"`
	IsVerified            bool           `json:"is_verified" gorm:"default:false"`
	IsActive              bool           `json:"is_active" gorm:"default:true"`

	// Relationships
	User    User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reviews []Review        `json:"reviews,omitempty" gorm:"foreignKey:WorkshopID"`
	Images  []WorkshopImage `json:"images,omitempty" gorm:"foreignKey:WorkshopID"`
}

// AverageRating is the arithmetic mean of all review ratings, 0 when
// the workshop has none.
func (w *Workshop) AverageRating() float64 {
	if len(w.Reviews) == 0 {
		return 0
	}

	var sum float64
	for _, review := range w.Reviews {
		sum += review.Rating
	}
	return sum / float64(len(w.Reviews))
}

type WorkshopImage struct {
	BaseModel
	WorkshopID uuid.UUID `json:"workshop_id" gorm:"type:uuid;not null;index"`
	ImageURL   string    `json:"image_url" gorm:"size:500;not null"`
	IsPreview  bool      `json:"is_preview" gorm:"default:false"`
	Position   int       `json:"position" gorm:"default:0"`
}

type Review struct {
	BaseModel
	WorkshopID uuid.UUID `json:"workshop_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Rating     float64   `json:"rating" gorm:"type:decimal(3,2);not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	Date       time.Time `json:"date" gorm:"autoCreateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
