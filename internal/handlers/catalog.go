// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /models
func (h *CatalogHandler) GetModels(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ModelSearchParams{
		PaginationParams: params,
	}

	// Parse additional filters
	if category := c.Query("category"); category != "" {
		clothingCategory := models.ClothingCategory(category)
		searchParams.Category = &clothingCategory
	}

	if featuredStr := c.Query("featured"); featuredStr != "" {
		if featured, err := strconv.ParseBool(featuredStr); err == nil {
			searchParams.Featured = &featured
		}
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			searchParams.MinPrice = &minPrice
		}
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			searchParams.MaxPrice = &maxPrice
		}
	}

	if style := c.Query("style"); style != "" {
		searchParams.Style = style
	}

	clothingModels, total, err := h.catalogService.SearchModels(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(clothingModels, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /models/featured
func (h *CatalogHandler) GetFeaturedModels(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit < 1 || limit > 20 {
		limit = 6
	}

	featured, err := h.catalogService.GetFeaturedModels(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"models": featured,
	})
}

// GET /models/:id
func (h *CatalogHandler) GetModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid model ID", nil)
		return
	}

	model, err := h.catalogService.GetModel(id)
	if err != nil {
		respondServiceError(c, err, "model")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"model": model,
	})
}

// POST /models (admin)
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	model, err := h.catalogService.CreateModel(&req)
	if err != nil {
		respondServiceError(c, err, "model")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyModelCreated),
		"model":   model,
	})
}

// PUT /models/:id (admin)
func (h *CatalogHandler) UpdateModel(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid model ID", nil)
		return
	}

	var req services.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	model, err := h.catalogService.UpdateModel(id, &req)
	if err != nil {
		respondServiceError(c, err, "model")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyModelUpdated),
		"model":   model,
	})
}

// DELETE /models/:id (admin)
func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid model ID", nil)
		return
	}

	if err := h.catalogService.DeleteModel(id); err != nil {
		respondServiceError(c, err, "model")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyModelDeleted),
	})
}

// POST /models/:id/images (admin)
func (h *CatalogHandler) AddImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid model ID", nil)
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

	image, err := h.catalogService.AddImage(id, req.ImageURL, req.IsPreview)
	if err != nil {
		respondServiceError(c, err, "model")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"image": image,
	})
}
