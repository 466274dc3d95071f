package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/repository/memory"
	"mergington-activities/internal/service"
)

func timeZero() time.Time {
	return time.Time{}
}

func TestGetOrCreateUser(t *testing.T) {
	userRepo := memory.NewInMemoryUserRepository()
	appLogger := logger.New()
	authService := service.NewAuthService(userRepo, appLogger)

	expiry := time.Now().Add(time.Hour)

	// First sign-in creates the account
	user, err := authService.GetOrCreateUser(context.Background(), "google_123", "teacher@mergington.edu", "Ms. Rodriguez", "access-1", "refresh-1", expiry)
	assert.NoError(t, err)
	assert.Equal(t, "teacher@mergington.edu", user.Email)
	assert.Equal(t, "access-1", user.AccessToken)

	// Second sign-in reuses the account and refreshes tokens
	again, err := authService.GetOrCreateUser(context.Background(), "google_123", "teacher@mergington.edu", "Ms. Rodriguez", "access-2", "refresh-2", expiry.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "access-2", again.AccessToken)
	assert.Equal(t, "refresh-2", again.RefreshToken)

	// Lookup by ID
	fetched, err := authService.GetUser(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
}

func TestGetOrCreateUserStringExpiry(t *testing.T) {
	userRepo := memory.NewInMemoryUserRepository()
	appLogger := logger.New()
	authService := service.NewAuthService(userRepo, appLogger)

	// goth may hand the expiry back as an RFC3339 string
	user, err := authService.GetOrCreateUser(context.Background(), "google_456", "principal@mergington.edu", "Principal Martinez", "access-1", "", "2026-06-30T15:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 2026, user.TokenExpiry.Year())
}
