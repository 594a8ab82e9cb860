// internal/handlers/measurement.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

type MeasurementHandler struct {
	measurementService *services.MeasurementService
}

func NewMeasurementHandler(measurementService *services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
	}
}

// GET /measurements
func (h *MeasurementHandler) GetMeasurements(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	measurements, total, err := h.measurementService.ListMeasurements(caller, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(measurements, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /measurements/:id
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid measurement ID", nil)
		return
	}

	measurement, err := h.measurementService.GetMeasurement(caller, id)
	if err != nil {
		respondServiceError(c, err, "measurement")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"measurement": measurement,
	})
}

// POST /measurements
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	measurement, err := h.measurementService.CreateMeasurement(caller.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "measurement")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyMeasurementCreated),
		"measurement": measurement,
	})
}

// PUT /measurements/:id
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid measurement ID", nil)
		return
	}

	var req services.UpdateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	measurement, err := h.measurementService.UpdateMeasurement(caller, id, &req)
	if err != nil {
		respondServiceError(c, err, "measurement")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyMeasurementUpdated),
		"measurement": measurement,
	})
}

// DELETE /measurements/:id
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid measurement ID", nil)
		return
	}

	if err := h.measurementService.DeleteMeasurement(caller, id); err != nil {
		respondServiceError(c, err, "measurement")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMeasurementDeleted),
	})
}
