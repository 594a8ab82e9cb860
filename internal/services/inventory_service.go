// internal/services/inventory_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

type InventoryService struct {
	db *gorm.DB
}

type CreateMaterialRequest struct {
	Name          string    `json:"name" validate:"required,min=2,max=100"`
	SKU           string    `json:"sku,omitempty" validate:"omitempty,max=50"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Description   string    `json:"description,omitempty"`
	Unit          string    `json:"unit" validate:"required"`
	UnitPrice     float64   `json:"unit_price" validate:"required,gt=0"`
	SupplierID    uuid.UUID `json:"supplier_id" validate:"required"`
	MinStockLevel float64   `json:"min_stock_level" validate:"omitempty,min=0"`
	InitialStock  float64   `json:"initial_stock" validate:"omitempty,min=0"`
	Location      string    `json:"location,omitempty"`
	Color         string    `json:"color,omitempty"`
	Width         *float64  `json:"width,omitempty" validate:"omitempty,gt=0"`
}

type UpdateMaterialRequest struct {
	Name          string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description   string   `json:"description,omitempty"`
	UnitPrice     float64  `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	MinStockLevel *float64 `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	Location      string   `json:"location,omitempty"`
	Color         string   `json:"color,omitempty"`
	Width         *float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
}

type StockMovementRequest struct {
	MovementType models.MovementType `json:"movement_type" validate:"required"`
	Quantity     float64             `json:"quantity" validate:"required,gt=0"`
	UnitPrice    *float64            `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	Reference    string              `json:"reference,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

type StockChangeRequest struct {
	Quantity  float64  `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	Reference string   `json:"reference,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type MaterialSearchParams struct {
	utils.PaginationParams
	CategoryID  *uuid.UUID          `json:"category_id,omitempty"`
	SupplierID  *uuid.UUID          `json:"supplier_id,omitempty"`
	StockStatus *models.StockStatus `json:"stock_status,omitempty"`
	Color       string              `json:"color,omitempty"`
}

type StockMovementSearchParams struct {
	utils.PaginationParams
	MaterialID   *uuid.UUID           `json:"material_id,omitempty"`
	MovementType *models.MovementType `json:"movement_type,omitempty"`
}

type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// --- Materials ---

func (s *InventoryService) CreateMaterial(caller access.Identity, req *CreateMaterialRequest) (*models.Material, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.IsValidMaterialUnit(req.Unit) {
		return nil, errors.New("invalid material unit")
	}

	// Verify category and supplier exist
	var category models.MaterialCategory
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var supplier models.Supplier
	if err := s.db.First(&supplier, req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	sku := req.SKU
	if sku == "" {
		generated, err := utils.GenerateSKU("MAT")
		if err != nil {
			return nil, fmt.Errorf("failed to generate SKU: %w", err)
		}
		sku = generated
	}

	material := &models.Material{
		Name:          req.Name,
		SKU:           sku,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Unit:          req.Unit,
		SupplierID:    req.SupplierID,
		UnitPrice:     req.UnitPrice,
		MinStockLevel: req.MinStockLevel,
		Location:      req.Location,
		Color:         req.Color,
		Width:         req.Width,
		IsActive:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(material).Error; err != nil {
			return fmt.Errorf("failed to create material: %w", err)
		}

		// Opening stock goes through the ledger like any other receipt
		if req.InitialStock > 0 {
			movement := &models.StockMovement{
				MaterialID:   material.ID,
				MovementType: models.MovementTypeIn,
				Quantity:     req.InitialStock,
				UnitPrice:    &req.UnitPrice,
				Reference:    "initial-stock",
				CreatedBy:    &caller.UserID,
			}
			if err := tx.Create(movement).Error; err != nil {
				return fmt.Errorf("failed to record initial stock: %w", err)
			}
			if err := tx.Model(material).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", req.InitialStock)).Error; err != nil {
				return fmt.Errorf("failed to set initial stock: %w", err)
			}
			material.CurrentStock = req.InitialStock
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return material, nil
}

func (s *InventoryService) GetMaterial(id uuid.UUID) (*models.Material, error) {
	var material models.Material
	if err := s.db.Preload("Category").Preload("Supplier").Preload("Images").
		First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &material, nil
}

func (s *InventoryService) UpdateMaterial(caller access.Identity, id uuid.UUID, req *UpdateMaterialRequest) (*models.Material, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var material models.Material
	if err := s.db.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates; stock levels change only through movements
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.UnitPrice > 0 {
		updates["unit_price"] = req.UnitPrice
	}
	if req.MinStockLevel != nil {
		updates["min_stock_level"] = *req.MinStockLevel
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Width != nil {
		updates["width"] = *req.Width
	}

	if len(updates) > 0 {
		if err := s.db.Model(&material).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update material: %w", err)
		}
	}

	return &material, nil
}

func (s *InventoryService) DeleteMaterial(caller access.Identity, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrPermissionDenied
	}

	var material models.Material
	if err := s.db.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete preserves the movement history
	if err := s.db.Delete(&material).Error; err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	return nil
}

func (s *InventoryService) SearchMaterials(params MaterialSearchParams) ([]models.Material, int64, error) {
	query := s.db.Model(&models.Material{}).
		Where("is_active = ?", true).
		Preload("Category").Preload("Supplier")

	// Apply filters
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.Color != "" {
		query = query.Where("LOWER(color) = ?", strings.ToLower(params.Color))
	}
	if params.StockStatus != nil {
		switch *params.StockStatus {
		case models.StockStatusOutOfStock:
			query = query.Where("current_stock <= 0")
		case models.StockStatusLowStock:
			query = query.Where("current_stock > 0 AND current_stock <= min_stock_level")
		case models.StockStatusInStock:
			query = query.Where("current_stock > min_stock_level")
		}
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "sku", "unit_price", "current_stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var materials []models.Material
	if err := query.Find(&materials).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch materials: %w", err)
	}

	return materials, total, nil
}

func (s *InventoryService) GetLowStockMaterials() ([]models.Material, error) {
	var materials []models.Material
	if err := s.db.Where("is_active = ? AND current_stock <= min_stock_level", true).
		Preload("Category").Preload("Supplier").
		Order("current_stock ASC").
		Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock materials: %w", err)
	}
	return materials, nil
}

// --- Stock ledger ---

// ApplyMovement inserts one immutable movement row and adjusts the
// material's current stock in the same transaction. Subtracting
// movements use a conditional update so two concurrent removals can
// never drive the stock negative.
func (s *InventoryService) ApplyMovement(caller access.Identity, materialID uuid.UUID, req *StockMovementRequest) (*models.StockMovement, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.IsValidMovementType(req.MovementType) {
		return nil, errors.New("invalid movement type")
	}

	movement := &models.StockMovement{
		MaterialID:   materialID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Reference:    req.Reference,
		Notes:        req.Notes,
		CreatedBy:    &caller.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var material models.Material
		if err := tx.First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		delta := movement.StockDelta()
		if delta >= 0 {
			if err := tx.Model(&models.Material{}).
				Where("id = ?", materialID).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}
		} else {
			// The WHERE guard makes the check-and-subtract atomic
			result := tx.Model(&models.Material{}).
				Where("id = ? AND current_stock >= ?", materialID, -delta).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta))
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Load the updated material for the response
	s.db.Preload("Material").First(movement, movement.ID)

	return movement, nil
}

// AddStock is the receiving shortcut for an "in" movement.
func (s *InventoryService) AddStock(caller access.Identity, materialID uuid.UUID, req *StockChangeRequest) (*models.StockMovement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.ApplyMovement(caller, materialID, &StockMovementRequest{
		MovementType: models.MovementTypeIn,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Reference:    req.Reference,
		Notes:        req.Notes,
	})
}

// RemoveStock is the consumption shortcut for an "out" movement.
func (s *InventoryService) RemoveStock(caller access.Identity, materialID uuid.UUID, req *StockChangeRequest) (*models.StockMovement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.ApplyMovement(caller, materialID, &StockMovementRequest{
		MovementType: models.MovementTypeOut,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Reference:    req.Reference,
		Notes:        req.Notes,
	})
}

// ListMovements returns the ledger for admins and an empty page for
// everyone else.
func (s *InventoryService) ListMovements(caller access.Identity, params StockMovementSearchParams) ([]models.StockMovement, int64, error) {
	if access.Decide(caller.Role, access.ResourceStockMovements) != access.AllowAll {
		return []models.StockMovement{}, 0, nil
	}

	query := s.db.Model(&models.StockMovement{}).
		Preload("Material").Preload("Creator")

	if params.MaterialID != nil {
		query = query.Where("material_id = ?", *params.MaterialID)
	}
	if params.MovementType != nil {
		query = query.Where("movement_type = ?", *params.MovementType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	allowedSortFields := []string{"created_at", "movement_type", "quantity"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch movements: %w", err)
	}

	return movements, total, nil
}

func (s *InventoryService) AddImage(caller access.Identity, materialID uuid.UUID, imageURL string, isPreview bool) (*models.MaterialImage, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	var material models.Material
	if err := s.db.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var position int64
	s.db.Model(&models.MaterialImage{}).Where("material_id = ?", materialID).Count(&position)

	image := &models.MaterialImage{
		MaterialID: materialID,
		ImageURL:   imageURL,
		IsPreview:  isPreview,
		Position:   int(position),
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to add material image: %w", err)
	}

	return image, nil
}

// --- Suppliers ---

func (s *InventoryService) CreateSupplier(caller access.Identity, req *CreateSupplierRequest) (*models.Supplier, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	supplier := &models.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Notes:       req.Notes,
		IsActive:    true,
	}

	if err := s.db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return supplier, nil
}

func (s *InventoryService) ListSuppliers(params utils.PaginationParams) ([]models.Supplier, int64, error) {
	query := s.db.Model(&models.Supplier{}).Where("is_active = ?", true)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	allowedSortFields := []string{"created_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var suppliers []models.Supplier
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch suppliers: %w", err)
	}

	return suppliers, total, nil
}

// --- Categories ---

func (s *InventoryService) CreateCategory(caller access.Identity, req *CreateCategoryRequest) (*models.MaterialCategory, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ParentID != nil {
		var parent models.MaterialCategory
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent category: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	category := &models.MaterialCategory{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *InventoryService) ListCategories() ([]models.MaterialCategory, error) {
	var categories []models.MaterialCategory
	if err := s.db.Preload("Children").
		Where("parent_id IS NULL").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}
