// internal/access/access.go

// Package access centralizes per-role visibility rules. Every collection
// read and every mutation goes through one decision function instead of
// conditionals scattered across handlers.
package access

import (
	"github.com/google/uuid"

	"github.com/couturehub/couture-backend/internal/models"
)

// Identity is the authenticated caller, threaded explicitly into service
// calls rather than read from ambient request state.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     models.UserType
}

func (id Identity) IsAdmin() bool {
	return id.Role == models.UserTypeAdmin
}

// Decision is the outcome of an access check on a collection or record.
type Decision int

const (
	// Deny grants nothing; listings come back empty.
	Deny Decision = iota
	// AllowOwn scopes the resource to rows owned by the caller.
	AllowOwn
	// AllowAll grants unscoped access.
	AllowAll
)

// Resource names the collections with role-dependent visibility.
type Resource int

const (
	ResourceOrders Resource = iota
	ResourceStockMovements
	ResourceMeasurements
	ResourceUsers
)

// Decide is a pure function of (role, resource) to a visibility decision.
//
//	Orders:          admin sees all, everyone else only their own
//	Stock movements: admin only, everyone else gets nothing
//	Measurements:    always scoped to the requesting user, admins included
//	Users:           admin lists all, others reach only their own record
func Decide(role models.UserType, resource Resource) Decision {
	// Measurements are body data; not even admins read someone else's.
	if resource == ResourceMeasurements {
		return AllowOwn
	}

	if role == models.UserTypeAdmin {
		return AllowAll
	}

	switch resource {
	case ResourceOrders:
		return AllowOwn
	case ResourceUsers:
		// Non-admins cannot list; record-level access goes through CanView.
		return AllowOwn
	case ResourceStockMovements:
		return Deny
	}
	return Deny
}

// CanView reports whether the caller may read a single record owned by
// ownerID under the given resource rules.
func CanView(id Identity, resource Resource, ownerID uuid.UUID) bool {
	switch Decide(id.Role, resource) {
	case AllowAll:
		return true
	case AllowOwn:
		return id.UserID == ownerID
	}
	return false
}
