// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ClothingModel struct {
	BaseModel
	Name          string           `json:"name" gorm:"size:100;not null"`
	Category      ClothingCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Description   string           `json:"description" gorm:"type:text"`
	Price         float64          `json:"price" gorm:"type:decimal(10,2);not null"`
	EstimatedDays int              `json:"estimated_days" gorm:"default:0"`
	Featured      bool             `json:"featured" gorm:"default:false;index"`
	Styles        pq.StringArray   `json:"styles" gorm:"type:text[]"`
	Model3DURL    string           `json:"model_3d_url" gorm:"size:500"`
	IsActive      bool             `json:"is_active" gorm:"default:true"`

	// Relationships
	Images []ModelImage `json:"images,omitempty" gorm:"foreignKey:ModelID"`
}

type ModelImage struct {
	BaseModel
	ModelID   uuid.UUID `json:"model_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	IsPreview bool      `json:"is_preview" gorm:"default:false"`
	Position  int       `json:"position" gorm:"default:0"`
}
