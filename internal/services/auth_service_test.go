// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/config"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

func newAuthTestService(t *testing.T) *AuthService {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	cfg := &config.Config{
		JWT: config.JWTConfig{AccessTokenTTL: 1, RefreshTokenTTL: 24},
	}
	return NewAuthService(setupTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	service := newAuthTestService(t)

	resp, err := service.Register(&RegisterRequest{
		Username: "aminata",
		Email:    "aminata@example.com",
		Password: "StrongPass1!",
		UserType: models.UserTypeClient,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	login, err := service.Login(&LoginRequest{
		Email:    "aminata@example.com",
		Password: "StrongPass1!",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLoginAt)

	_, err = service.Login(&LoginRequest{
		Email:    "aminata@example.com",
		Password: "wrong-password",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsAdminSelfRegistration(t *testing.T) {
	service := newAuthTestService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "wannabe",
		Email:    "wannabe@example.com",
		Password: "StrongPass1!",
		UserType: models.UserTypeAdmin,
	})
	assert.Error(t, err)
}

func TestRegisterWorkshopCreatesProfile(t *testing.T) {
	service := newAuthTestService(t)

	resp, err := service.Register(&RegisterRequest{
		Username: "atelierba",
		Email:    "atelier@example.com",
		Password: "StrongPass1!",
		UserType: models.UserTypeWorkshop,
	})
	require.NoError(t, err)

	var workshop models.Workshop
	require.NoError(t, service.db.Where("user_id = ?", resp.User.ID).First(&workshop).Error)
	assert.True(t, workshop.IsActive)
}

func TestLoginRejectsSuspendedAccounts(t *testing.T) {
	service := newAuthTestService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "suspended",
		Email:    "suspended@example.com",
		Password: "StrongPass1!",
		UserType: models.UserTypeClient,
	})
	require.NoError(t, err)

	require.NoError(t, service.db.Model(&models.User{}).
		Where("email = ?", "suspended@example.com").
		Update("status", models.UserStatusSuspended).Error)

	_, err = service.Login(&LoginRequest{
		Email:    "suspended@example.com",
		Password: "StrongPass1!",
	})
	assert.Error(t, err)
}
