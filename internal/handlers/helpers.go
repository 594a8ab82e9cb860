// internal/handlers/helpers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/i18n"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

// callerFromContext builds the caller identity from the auth middleware
// claims. Returns false when the request is unauthenticated.
func callerFromContext(c *gin.Context) (access.Identity, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return access.Identity{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return access.Identity{}, false
	}

	username := c.GetString("username")
	userType, _ := utils.GetUserTypeFromContext(c)

	return access.Identity{
		UserID:   userID,
		Username: username,
		Role:     models.UserType(userType),
	}, true
}

// respondServiceError maps sentinel service errors onto HTTP responses.
// resource is the i18n prefix used for not-found messages ("order",
// "material", ...).
func respondServiceError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrPermissionDenied):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, 400, "INSUFFICIENT_STOCK", i18n.T(lang, i18n.KeyStockInsufficient), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ErrorResponse(c, 400, "INVALID_TRANSITION", i18n.T(lang, i18n.KeyOrderInvalidTransition), err.Error())
	case errors.Is(err, services.ErrCannotCancel):
		utils.ErrorResponse(c, 400, "CANNOT_CANCEL", i18n.T(lang, i18n.KeyOrderCannotCancel), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
