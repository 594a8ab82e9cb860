// internal/handlers/design.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

type DesignHandler struct {
	designService *services.DesignService
}

func NewDesignHandler(designService *services.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

// POST /design/generate-models
func (h *DesignHandler) GenerateModels(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GenerateModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	suggestions, err := h.designService.GenerateModels(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"suggestions": suggestions,
	})
}

// POST /design/analyze-fabric
func (h *DesignHandler) AnalyzeFabric(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AnalyzeFabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	analysis, err := h.designService.AnalyzeFabric(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"analysis": analysis,
	})
}
