// internal/services/errors.go
package services

import "errors"

// Sentinel errors shared across services. Handlers translate these into
// HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCannotCancel      = errors.New("order can no longer be cancelled")
)
