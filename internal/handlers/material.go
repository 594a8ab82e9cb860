// internal/handlers/material.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

type MaterialHandler struct {
	inventoryService *services.InventoryService
}

func NewMaterialHandler(inventoryService *services.InventoryService) *MaterialHandler {
	return &MaterialHandler{
		inventoryService: inventoryService,
	}
}

// GET /materials
func (h *MaterialHandler) GetMaterials(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.MaterialSearchParams{
		PaginationParams: params,
	}

	// Parse additional filters
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}

	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if supplierID, err := uuid.Parse(supplierIDStr); err == nil {
			searchParams.SupplierID = &supplierID
		}
	}

	if stockStatus := c.Query("stock_status"); stockStatus != "" {
		status := models.StockStatus(stockStatus)
		searchParams.StockStatus = &status
	}

	if color := c.Query("color"); color != "" {
		searchParams.Color = color
	}

	materials, total, err := h.inventoryService.SearchMaterials(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(materials, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /materials/low-stock (admin)
func (h *MaterialHandler) GetLowStockMaterials(c *gin.Context) {
	materials, err := h.inventoryService.GetLowStockMaterials()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"materials": materials,
	})
}

// GET /materials/:id
func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	material, err := h.inventoryService.GetMaterial(id)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"material":     material,
		"stock_status": material.StockStatus(),
	})
}

// POST /materials (admin)
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	material, err := h.inventoryService.CreateMaterial(caller, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyMaterialCreated),
		"material": material,
	})
}

// PUT /materials/:id (admin)
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	material, err := h.inventoryService.UpdateMaterial(caller, id, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyMaterialUpdated),
		"material": material,
	})
}

// DELETE /materials/:id (admin)
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	if err := h.inventoryService.DeleteMaterial(caller, id); err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMaterialDeleted),
	})
}

// POST /materials/:id/add-stock (admin)
func (h *MaterialHandler) AddStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	var req services.StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	movement, err := h.inventoryService.AddStock(caller, id, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyStockAdded),
		"movement": movement,
	})
}

// POST /materials/:id/remove-stock (admin)
func (h *MaterialHandler) RemoveStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	var req services.StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	movement, err := h.inventoryService.RemoveStock(caller, id, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyStockRemoved),
		"movement": movement,
	})
}

// POST /materials/:id/movements (admin)
func (h *MaterialHandler) ApplyMovement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	var req services.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	movement, err := h.inventoryService.ApplyMovement(caller, id, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"movement": movement,
	})
}

// GET /stock-movements
//
// Admins get the full ledger; any other caller gets an empty page.
func (h *MaterialHandler) GetStockMovements(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	searchParams := services.StockMovementSearchParams{
		PaginationParams: params,
	}

	if materialIDStr := c.Query("material_id"); materialIDStr != "" {
		if materialID, err := uuid.Parse(materialIDStr); err == nil {
			searchParams.MaterialID = &materialID
		}
	}

	if movementType := c.Query("movement_type"); movementType != "" {
		mt := models.MovementType(movementType)
		searchParams.MovementType = &mt
	}

	movements, total, err := h.inventoryService.ListMovements(caller, searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(movements, total, params)
	utils.PaginatedResponse(c, result)
}

// --- Suppliers ---

// GET /suppliers (admin)
func (h *MaterialHandler) GetSuppliers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	suppliers, total, err := h.inventoryService.ListSuppliers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(suppliers, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /suppliers (admin)
func (h *MaterialHandler) CreateSupplier(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	supplier, err := h.inventoryService.CreateSupplier(caller, &req)
	if err != nil {
		respondServiceError(c, err, "supplier")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"supplier": supplier,
	})
}

// --- Material categories ---

// GET /material-categories
func (h *MaterialHandler) GetCategories(c *gin.Context) {
	categories, err := h.inventoryService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// POST /material-categories (admin)
func (h *MaterialHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.inventoryService.CreateCategory(caller, &req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"category": category,
	})
}

// POST /materials/:id/images (admin)
func (h *MaterialHandler) AddImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid material ID", nil)
		return
	}

	var req struct {
		ImageURL  string `json:"image_url" validate:"required,url"`
		IsPreview bool   `json:"is_preview,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	image, err := h.inventoryService.AddImage(caller, id, req.ImageURL, req.IsPreview)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"image": image,
	})
}
