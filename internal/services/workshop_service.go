// internal/services/workshop_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

type WorkshopService struct {
	db *gorm.DB
}

type UpdateWorkshopRequest struct {
	Name                  string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description           string   `json:"description,omitempty"`
	LogoURL               string   `json:"logo_url,omitempty" validate:"omitempty,url"`
	Address               string   `json:"address,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	Specialties           []string `json:"specialties,omitempty"`
	EstimatedDeliveryDays int      `json:"estimated_delivery_days,omitempty" validate:"omitempty,min=1"`
	PriceRangeMin         float64  `json:"price_range_min,omitempty" validate:"omitempty,min=0"`
	PriceRangeMax         float64  `json:"price_range_max,omitempty" validate:"omitempty,min=0"`
}

type WorkshopSearchParams struct {
	utils.PaginationParams
	Specialty string   `json:"specialty,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	Verified  *bool    `json:"verified,omitempty"`
}

type AddReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment,omitempty"`
}

func NewWorkshopService(db *gorm.DB) *WorkshopService {
	return &WorkshopService{db: db}
}

func (s *WorkshopService) GetWorkshop(id uuid.UUID) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := s.db.Preload("Reviews").Preload("Reviews.User").Preload("Images").
		First(&workshop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &workshop, nil
}

func (s *WorkshopService) GetWorkshopByUserID(userID uuid.UUID) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := s.db.Where("user_id = ?", userID).First(&workshop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &workshop, nil
}

func (s *WorkshopService) UpdateWorkshop(id uuid.UUID, userID uuid.UUID, isAdmin bool, req *UpdateWorkshopRequest) (*models.Workshop, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var workshop models.Workshop
	if err := s.db.First(&workshop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Only the owning account or an admin may edit
	if workshop.UserID != userID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.LogoURL != "" {
		updates["logo_url"] = req.LogoURL
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Specialties != nil {
		updates["specialties"] = pq.StringArray(req.Specialties)
	}
	if req.EstimatedDeliveryDays > 0 {
		updates["estimated_delivery_days"] = req.EstimatedDeliveryDays
	}
	if req.PriceRangeMin > 0 {
		updates["price_range_min"] = req.PriceRangeMin
	}
	if req.PriceRangeMax > 0 {
		updates["price_range_max"] = req.PriceRangeMax
	}

	if len(updates) > 0 {
		if err := s.db.Model(&workshop).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update workshop: %w", err)
		}
	}

	return &workshop, nil
}

func (s *WorkshopService) SearchWorkshops(params WorkshopSearchParams) ([]models.Workshop, int64, error) {
	query := s.db.Model(&models.Workshop{}).
		Where("is_active = ?", true).
		Preload("Images")

	// Apply filters
	if params.Specialty != "" {
		query = query.Where("specialties && ?", pq.StringArray{params.Specialty})
	}

	if params.MinRating != nil {
		query = query.Where("rating >= ?", *params.MinRating)
	}

	if params.MaxPrice != nil {
		query = query.Where("price_range_min <= ?", *params.MaxPrice)
	}

	if params.Verified != nil {
		query = query.Where("is_verified = ?", *params.Verified)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count workshops: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "rating", "price_range_min", "estimated_delivery_days"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var workshops []models.Workshop
	if err := query.Find(&workshops).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch workshops: %w", err)
	}

	return workshops, total, nil
}

func (s *WorkshopService) AddReview(workshopID uuid.UUID, userID uuid.UUID, req *AddReviewRequest) (*models.Review, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var workshop models.Workshop
	if err := s.db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// A review is verified when the reviewer has a delivered order there
	var deliveredCount int64
	s.db.Model(&models.Order{}).
		Where("workshop_id = ? AND user_id = ? AND status = ?", workshopID, userID, models.OrderStatusDelivered).
		Count(&deliveredCount)

	review := &models.Review{
		WorkshopID: workshopID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsVerified: deliveredCount > 0,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		// Recompute the cached rating from all reviews
		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("workshop_id = ?", workshopID).
			Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
			return fmt.Errorf("failed to compute rating: %w", err)
		}

		if err := tx.Model(&models.Workshop{}).
			Where("id = ?", workshopID).
			Update("rating", avg).Error; err != nil {
			return fmt.Errorf("failed to update workshop rating: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Load reviewer for the response
	s.db.Preload("User").First(review, review.ID)

	return review, nil
}

func (s *WorkshopService) GetReviews(workshopID uuid.UUID, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).
		Where("workshop_id = ?", workshopID).
		Preload("User")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	allowedSortFields := []string{"created_at", "rating"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *WorkshopService) AddImage(workshopID uuid.UUID, userID uuid.UUID, isAdmin bool, imageURL string, isPreview bool) (*models.WorkshopImage, error) {
	var workshop models.Workshop
	if err := s.db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if workshop.UserID != userID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	var position int64
	s.db.Model(&models.WorkshopImage{}).Where("workshop_id = ?", workshopID).Count(&position)

	image := &models.WorkshopImage{
		WorkshopID: workshopID,
		ImageURL:   imageURL,
		IsPreview:  isPreview,
		Position:   int(position),
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to add workshop image: %w", err)
	}

	return image, nil
}

func (s *WorkshopService) SetVerified(workshopID uuid.UUID, verified bool) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := s.db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&workshop).Update("is_verified", verified).Error; err != nil {
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	return &workshop, nil
}
