// internal/models/measurement.go
package models

import (
	"github.com/google/uuid"
)

// Measurement is a named measurement set owned by a single user, either a
// standard size code or a free-form custom set. Orders reference it
// read-only.
type Measurement struct {
	BaseModel
	UserID             uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Name               string          `json:"name" gorm:"size:100"`
	MeasurementType    MeasurementType `json:"measurement_type" gorm:"type:varchar(10);default:'standard'"`
	StandardSize       string          `json:"standard_size" gorm:"size:3"`
	CustomMeasurements JSONB           `json:"custom_measurements" gorm:"type:jsonb"`
	TailorNotes        string          `json:"tailor_notes" gorm:"type:text"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// StandardSizes accepted for standard measurement sets.
var StandardSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

func IsValidStandardSize(size string) bool {
	for _, s := range StandardSizes {
		if s == size {
			return true
		}
	}
	return false
}
