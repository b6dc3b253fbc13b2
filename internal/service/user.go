package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rookgm/gopherstore/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserService implements UserService interface
type UserService struct {
	repo UserRepository
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates new user with hashed password
func (us *UserService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.NewString()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.PasswordHash = string(hash)
	user.Role = models.RoleUser

	return us.repo.CreateUser(ctx, user)
}

// GetUser returns user by id
func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, models.ErrUnauthorized
	}

	user, err := us.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
