package services

import (
	"testing"

	"github.com/newslens-app/newslens/internal/config"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:       "new@example.com",
		Password:    "password123",
		DisplayName: "New Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)

	profile, err := svc.Profile(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaningUnspecified, profile.PoliticalLeaning)
	assert.False(t, profile.SurveyCompleted)
	assert.Empty(t, profile.SavedArticles)
	assert.Empty(t, profile.LikedArticles)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterShortPassword(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotates(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: "rot@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The consumed token is revoked and cannot be replayed.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: "out@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetPoliticalLeaning(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: "lean@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.SetPoliticalLeaning(reg.User.ID, models.LeaningGreen))

	profile, err := svc.Profile(reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaningGreen, profile.PoliticalLeaning)
	assert.True(t, profile.SurveyCompleted)

	assert.ErrorIs(t, svc.SetPoliticalLeaning(reg.User.ID, "radical"), ErrInvalidLeaning)
}

func TestSetPoliticalLeaningUnknownUser(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig())

	user := seedUser(t, db, "other@example.com")
	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	err := svc.SetPoliticalLeaning(user.ID, models.LeaningModerate)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.SeedAdminMail = "admin@example.com"
	cfg.SeedAdminPass = "adminpass123"
	svc := NewAuthService(db, cfg)

	require.NoError(t, svc.EnsureAdmin())
	require.NoError(t, svc.EnsureAdmin()) // idempotent

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", cfg.SeedAdminMail).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	resp, err := svc.Login(&dto.LoginRequest{Email: cfg.SeedAdminMail, Password: cfg.SeedAdminPass})
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
}

func TestEnsureAdminPromotesExisting(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.SeedAdminMail = "promoted@example.com"
	cfg.SeedAdminPass = "adminpass123"
	svc := NewAuthService(db, cfg)

	user := seedUser(t, db, "promoted@example.com")
	require.NoError(t, svc.EnsureAdmin())

	profile, err := svc.Profile(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsAdmin)
}

func TestEnsureAdminDisabledWithoutConfig(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, &config.Config{JWTSecret: "s"})

	require.NoError(t, svc.EnsureAdmin())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
