// internal/services/measurement_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

type MeasurementService struct {
	db *gorm.DB
}

type CreateMeasurementRequest struct {
	Name               string                 `json:"name" validate:"required,min=1,max=100"`
	MeasurementType    models.MeasurementType `json:"measurement_type" validate:"required"`
	StandardSize       string                 `json:"standard_size,omitempty"`
	CustomMeasurements map[string]interface{} `json:"custom_measurements,omitempty"`
	TailorNotes        string                 `json:"tailor_notes,omitempty"`
}

type UpdateMeasurementRequest struct {
	Name               string                 `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	StandardSize       string                 `json:"standard_size,omitempty"`
	CustomMeasurements map[string]interface{} `json:"custom_measurements,omitempty"`
	TailorNotes        string                 `json:"tailor_notes,omitempty"`
}

func NewMeasurementService(db *gorm.DB) *MeasurementService {
	return &MeasurementService{db: db}
}

func (s *MeasurementService) CreateMeasurement(userID uuid.UUID, req *CreateMeasurementRequest) (*models.Measurement, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	switch req.MeasurementType {
	case models.MeasurementTypeStandard:
		if !models.IsValidStandardSize(req.StandardSize) {
			return nil, errors.New("invalid standard size")
		}
	case models.MeasurementTypeCustom, models.MeasurementTypeTailor:
		if len(req.CustomMeasurements) == 0 {
			return nil, errors.New("custom measurements are required")
		}
	default:
		return nil, errors.New("invalid measurement type")
	}

	measurement := &models.Measurement{
		UserID:             userID,
		Name:               req.Name,
		MeasurementType:    req.MeasurementType,
		StandardSize:       req.StandardSize,
		CustomMeasurements: models.JSONB(req.CustomMeasurements),
		TailorNotes:        req.TailorNotes,
	}

	if err := s.db.Create(measurement).Error; err != nil {
		return nil, fmt.Errorf("failed to create measurement: %w", err)
	}

	return measurement, nil
}

// GetMeasurement fetches one measurement set. Measurements are always
// scoped to their owner; no role reads another user's body data.
func (s *MeasurementService) GetMeasurement(caller access.Identity, id uuid.UUID) (*models.Measurement, error) {
	var measurement models.Measurement
	if err := s.db.First(&measurement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !access.CanView(caller, access.ResourceMeasurements, measurement.UserID) {
		return nil, ErrPermissionDenied
	}

	return &measurement, nil
}

func (s *MeasurementService) ListMeasurements(caller access.Identity, params utils.PaginationParams) ([]models.Measurement, int64, error) {
	// Listings are always scoped to the caller; cross-user reads go
	// record by record through GetMeasurement.
	query := s.db.Model(&models.Measurement{}).Where("user_id = ?", caller.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count measurements: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var measurements []models.Measurement
	if err := query.Find(&measurements).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch measurements: %w", err)
	}

	return measurements, total, nil
}

func (s *MeasurementService) UpdateMeasurement(caller access.Identity, id uuid.UUID, req *UpdateMeasurementRequest) (*models.Measurement, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var measurement models.Measurement
	if err := s.db.First(&measurement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !access.CanView(caller, access.ResourceMeasurements, measurement.UserID) {
		return nil, ErrPermissionDenied
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.StandardSize != "" {
		if !models.IsValidStandardSize(req.StandardSize) {
			return nil, errors.New("invalid standard size")
		}
		updates["standard_size"] = req.StandardSize
	}
	if req.CustomMeasurements != nil {
		updates["custom_measurements"] = models.JSONB(req.CustomMeasurements)
	}
	if req.TailorNotes != "" {
		updates["tailor_notes"] = req.TailorNotes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&measurement).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update measurement: %w", err)
		}
	}

	return &measurement, nil
}

func (s *MeasurementService) DeleteMeasurement(caller access.Identity, id uuid.UUID) error {
	var measurement models.Measurement
	if err := s.db.First(&measurement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !access.CanView(caller, access.ResourceMeasurements, measurement.UserID) {
		return ErrPermissionDenied
	}

	// Keep sets referenced by orders; the soft delete hides them from
	// listings while preserving the order's snapshot.
	if err := s.db.Delete(&measurement).Error; err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}

	return nil
}
