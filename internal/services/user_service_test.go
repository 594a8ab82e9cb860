// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

func TestSearchUsersReturnsEmptyPageForNonAdmins(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	admin := createTestUser(t, db, models.UserTypeAdmin)
	client := createTestUser(t, db, models.UserTypeClient)
	createTestUser(t, db, models.UserTypeWorkshop)

	params := UserSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	}

	users, total, err := service.SearchUsers(identityFor(admin), params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)

	users, total, err = service.SearchUsers(identityFor(client), params)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, users)
}

func TestGetUserHonorsRecordAccess(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	owner := createTestUser(t, db, models.UserTypeClient)
	stranger := createTestUser(t, db, models.UserTypeClient)
	admin := createTestUser(t, db, models.UserTypeAdmin)

	_, err := service.GetUser(identityFor(owner), owner.ID)
	assert.NoError(t, err)

	_, err = service.GetUser(identityFor(stranger), owner.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = service.GetUser(identityFor(admin), owner.ID)
	assert.NoError(t, err)
}

func TestUpdateUserStatusIsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	admin := createTestUser(t, db, models.UserTypeAdmin)
	client := createTestUser(t, db, models.UserTypeClient)
	target := createTestUser(t, db, models.UserTypeClient)

	_, err := service.UpdateUserStatus(identityFor(client), target.ID, &UpdateUserStatusRequest{
		Status: models.UserStatusSuspended,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := service.UpdateUserStatus(identityFor(admin), target.ID, &UpdateUserStatusRequest{
		Status: models.UserStatusSuspended,
		Reason: "payment disputes",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, updated.Status)

	_, err = service.UpdateUserStatus(identityFor(admin), target.ID, &UpdateUserStatusRequest{
		Status: models.UserStatus("frozen"),
	})
	assert.Error(t, err)
}
