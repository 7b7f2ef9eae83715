package service

import (
	"errors"
	"time"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"github.com/ndemidova/ringshop-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(email, password string) (string, *model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies staff credentials and issues an access token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login attempt for unknown email", map[string]interface{}{
				"email": email,
			})
			return "", nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user", err, map[string]interface{}{
			"email": email,
		})
		return "", nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login attempt with wrong password", map[string]interface{}{
			"email": email,
		})
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to issue access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", nil, err
	}

	logger.Info("Staff login succeeded", map[string]interface{}{
		"user_id": user.ID,
	})
	return token, user, nil
}
