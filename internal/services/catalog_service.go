// internal/services/catalog_service.go
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

type CatalogService struct {
	db *gorm.DB
}

type CreateModelRequest struct {
	Name          string                  `json:"name" validate:"required,min=2,max=100"`
	Category      models.ClothingCategory `json:"category" validate:"required"`
	Description   string                  `json:"description,omitempty"`
	Price         float64                 `json:"price" validate:"required,gt=0"`
	EstimatedDays int                     `json:"estimated_days" validate:"omitempty,min=1"`
	Featured      bool                    `json:"featured,omitempty"`
	Styles        []string                `json:"styles,omitempty"`
	Model3DURL    string                  `json:"model_3d_url,omitempty" validate:"omitempty,url"`
}

type UpdateModelRequest struct {
	Name          string                  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category      models.ClothingCategory `json:"category,omitempty"`
	Description   string                  `json:"description,omitempty"`
	Price         float64                 `json:"price,omitempty" validate:"omitempty,gt=0"`
	EstimatedDays int                     `json:"estimated_days,omitempty" validate:"omitempty,min=1"`
	Featured      *bool                   `json:"featured,omitempty"`
	Styles        []string                `json:"styles,omitempty"`
	Model3DURL    string                  `json:"model_3d_url,omitempty" validate:"omitempty,url"`
}

type ModelSearchParams struct {
	utils.PaginationParams
	Category *models.ClothingCategory `json:"category,omitempty"`
	Featured *bool                    `json:"featured,omitempty"`
	MinPrice *float64                 `json:"min_price,omitempty"`
	MaxPrice *float64                 `json:"max_price,omitempty"`
	Style    string                   `json:"style,omitempty"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateModel(req *CreateModelRequest) (*models.ClothingModel, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !isValidClothingCategory(req.Category) {
		return nil, errors.New("invalid clothing category")
	}

	model := &models.ClothingModel{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		Featured:      req.Featured,
		Styles:        pq.StringArray(req.Styles),
		Model3DURL:    req.Model3DURL,
		IsActive:      true,
	}

	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create clothing model: %w", err)
	}

	return model, nil
}

func (s *CatalogService) GetModel(id uuid.UUID) (*models.ClothingModel, error) {
	var model models.ClothingModel
	if err := s.db.Preload("Images").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &model, nil
}

func (s *CatalogService) UpdateModel(id uuid.UUID, req *UpdateModelRequest) (*models.ClothingModel, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var model models.ClothingModel
	if err := s.db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		if !isValidClothingCategory(req.Category) {
			return nil, errors.New("invalid clothing category")
		}
		updates["category"] = req.Category
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.EstimatedDays > 0 {
		updates["estimated_days"] = req.EstimatedDays
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Styles != nil {
		updates["styles"] = pq.StringArray(req.Styles)
	}
	if req.Model3DURL != "" {
		updates["model_3d_url"] = req.Model3DURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&model).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update clothing model: %w", err)
		}
	}

	return &model, nil
}

// DeleteModel soft-deletes a model so existing orders keep their reference.
func (s *CatalogService) DeleteModel(id uuid.UUID) error {
	var model models.ClothingModel
	if err := s.db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&model).Error; err != nil {
		return fmt.Errorf("failed to delete clothing model: %w", err)
	}

	return nil
}

func (s *CatalogService) SearchModels(params ModelSearchParams) ([]models.ClothingModel, int64, error) {
	query := s.db.Model(&models.ClothingModel{}).
		Where("is_active = ?", true).
		Preload("Images")

	// Apply filters
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if params.Featured != nil {
		query = query.Where("featured = ?", *params.Featured)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}

	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if params.Style != "" {
		query = query.Where("styles && ?", pq.StringArray{params.Style})
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clothing models: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "estimated_days"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var clothingModels []models.ClothingModel
	if err := query.Find(&clothingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clothing models: %w", err)
	}

	return clothingModels, total, nil
}

func (s *CatalogService) GetFeaturedModels(limit int) ([]models.ClothingModel, error) {
	var featured []models.ClothingModel
	if err := s.db.Where("is_active = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Images").
		Find(&featured).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured models: %w", err)
	}
	return featured, nil
}

func (s *CatalogService) AddImage(modelID uuid.UUID, imageURL string, isPreview bool) (*models.ModelImage, error) {
	var model models.ClothingModel
	if err := s.db.First(&model, modelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var position int64
	s.db.Model(&models.ModelImage{}).Where("model_id = ?", modelID).Count(&position)

	image := &models.ModelImage{
		ModelID:   modelID,
		ImageURL:  imageURL,
		IsPreview: isPreview,
		Position:  int(position),
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to add model image: %w", err)
	}

	return image, nil
}

func isValidClothingCategory(c models.ClothingCategory) bool {
	switch c {
	case models.ClothingCategoryShirt, models.ClothingCategoryDress, models.ClothingCategorySuit,
		models.ClothingCategoryPants, models.ClothingCategorySkirt, models.ClothingCategoryOther:
		return true
	}
	return false
}
