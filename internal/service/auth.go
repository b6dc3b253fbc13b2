package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rookgm/gopherstore/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements AuthService interface
type AuthService struct {
	repo  UserRepository
	token TokenService
}

// NewAuthService creates new AuthService instance
func NewAuthService(repo UserRepository, token TokenService) *AuthService {
	return &AuthService{
		repo:  repo,
		token: token,
	}
}

// Login checks user credentials and returns token
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := as.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := as.token.CreateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
