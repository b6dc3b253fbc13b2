package service

import "github.com/rookgm/gopherstore/internal/models"

// TokenService issues and verifies authorization tokens
type TokenService interface {
	CreateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}
