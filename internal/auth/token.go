package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rookgm/gopherstore/internal/models"
)

// token lifetime
const tokenTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AuthToken issues and verifies HS256 tokens
type AuthToken struct {
	key []byte
	now func() time.Time
}

// NewAuthToken creates new AuthToken instance
func NewAuthToken(key []byte) *AuthToken {
	return &AuthToken{
		key: key,
		now: time.Now,
	}
}

// CreateToken creates signed token for user
func (at *AuthToken) CreateToken(user *models.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", ErrInvalidToken
	}

	now := at.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(at.key)
}

// VerifyToken checks token signature and expiry, returns its payload
func (at *AuthToken) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	claims := jwt.RegisteredClaims{}

	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	token, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return at.key, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &models.TokenPayload{UserID: claims.Subject}, nil
}
