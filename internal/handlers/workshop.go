// internal/handlers/workshop.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

type WorkshopHandler struct {
	workshopService *services.WorkshopService
}

func NewWorkshopHandler(workshopService *services.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{
		workshopService: workshopService,
	}
}

// GET /workshops
func (h *WorkshopHandler) GetWorkshops(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.WorkshopSearchParams{
		PaginationParams: params,
	}

	// Parse additional filters
	if specialty := c.Query("specialty"); specialty != "" {
		searchParams.Specialty = specialty
	}

	if minRatingStr := c.Query("min_rating"); minRatingStr != "" {
		if minRating, err := strconv.ParseFloat(minRatingStr, 64); err == nil {
			searchParams.MinRating = &minRating
		}
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			searchParams.MaxPrice = &maxPrice
		}
	}

	if verifiedStr := c.Query("verified"); verifiedStr != "" {
		if verified, err := strconv.ParseBool(verifiedStr); err == nil {
			searchParams.Verified = &verified
		}
	}

	workshops, total, err := h.workshopService.SearchWorkshops(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(workshops, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /workshops/:id
func (h *WorkshopHandler) GetWorkshop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workshop ID", nil)
		return
	}

	workshop, err := h.workshopService.GetWorkshop(id)
	if err != nil {
		respondServiceError(c, err, "workshop")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"workshop":       workshop,
		"average_rating": workshop.AverageRating(),
	})
}

// PUT /workshops/:id
func (h *WorkshopHandler) UpdateWorkshop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workshop ID", nil)
		return
	}

	var req services.UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	workshop, err := h.workshopService.UpdateWorkshop(id, caller.UserID, caller.IsAdmin(), &req)
	if err != nil {
		respondServiceError(c, err, "workshop")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyWorkshopUpdated),
		"workshop": workshop,
	})
}

// GET /workshops/:id/reviews
func (h *WorkshopHandler) GetReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workshop ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.workshopService.GetReviews(id, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /workshops/:id/reviews
func (h *WorkshopHandler) AddReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workshop ID", nil)
		return
	}

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.workshopService.AddReview(id, caller.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "workshop")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWorkshopReviewAdded),
		"review":  review,
	})
}

// POST /workshops/:id/images
func (h *WorkshopHandler) AddImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workshop ID", nil)
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

	image, err := h.workshopService.AddImage(id, caller.UserID, caller.IsAdmin(), req.ImageURL, req.IsPreview)
	if err != nil {
		respondServiceError(c, err, "workshop")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"image": image,
	})
}
