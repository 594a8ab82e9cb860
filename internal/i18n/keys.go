// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Users
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserStatusUpdated  = "user.status_updated"

	// Workshops
	KeyWorkshopNotFound    = "workshop.not_found"
	KeyWorkshopCreated     = "workshop.created"
	KeyWorkshopUpdated     = "workshop.updated"
	KeyWorkshopReviewAdded = "workshop.review_added"

	// Catalog
	KeyModelNotFound = "model.not_found"
	KeyModelCreated  = "model.created"
	KeyModelUpdated  = "model.updated"
	KeyModelDeleted  = "model.deleted"

	// Measurements
	KeyMeasurementNotFound = "measurement.not_found"
	KeyMeasurementCreated  = "measurement.created"
	KeyMeasurementUpdated  = "measurement.updated"
	KeyMeasurementDeleted  = "measurement.deleted"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderCreated           = "order.created"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderCancelled         = "order.cancelled"
	KeyOrderInvalidTransition = "order.invalid_transition"
	KeyOrderCannotCancel      = "order.cannot_cancel"

	// Materials and stock
	KeyMaterialNotFound      = "material.not_found"
	KeyMaterialCreated       = "material.created"
	KeyMaterialUpdated       = "material.updated"
	KeyMaterialDeleted       = "material.deleted"
	KeyStockAdded            = "material.stock_added"
	KeyStockRemoved          = "material.stock_removed"
	KeyStockInsufficient     = "material.insufficient_stock"
	KeySupplierNotFound      = "supplier.not_found"
	KeyCategoryNotFound      = "category.not_found"

	// Payments
	KeyPaymentIntentCreated = "payment.intent_created"
	KeyPaymentConfirmed     = "payment.confirmed"
	KeyPaymentNotFound      = "payment.not_found"

	// Uploads
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
