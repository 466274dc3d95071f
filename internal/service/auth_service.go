package service

import (
	"context"
	"time"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error) {
	existingUser, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		// User doesn't exist, create new one
		newUser := model.NewUser(googleID, email, name, accessToken, refreshToken, parseExpiry(tokenExpiry))
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user:", err)
			return nil, err
		}
		s.logger.Info("Created new staff user:", newUser.ID)
		return newUser, nil
	}

	// User exists, refresh tokens if provided
	if accessToken != "" || refreshToken != "" {
		existingUser.AccessToken = accessToken
		existingUser.RefreshToken = refreshToken
		if expiry := parseExpiry(tokenExpiry); !expiry.IsZero() {
			existingUser.TokenExpiry = expiry
		}
		existingUser.UpdatedAt = time.Now()

		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			s.logger.Error("Failed to update user tokens:", err)
			return nil, err
		}
	}

	return existingUser, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// parseExpiry accepts the expiry in the types goth hands back
func parseExpiry(tokenExpiry interface{}) time.Time {
	switch exp := tokenExpiry.(type) {
	case time.Time:
		return exp
	case string:
		if parsed, err := time.Parse(time.RFC3339, exp); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
