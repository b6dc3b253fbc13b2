package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
)

const (
	userColumns = `id, name, email, password_hash, phone, address, role, created_at`

	insertUserQuery = `
						INSERT INTO users (id, name, email, password_hash, phone, address, role)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING ` + userColumns + `
`
	selectUserByEmailQuery = `
						SELECT ` + userColumns + ` FROM users WHERE email = $1
`
	selectUserByIDQuery = `
						SELECT ` + userColumns + ` FROM users WHERE id = $1
`
)

// UserRepository implements UserRepository interface
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := scanUser(ur.db.QueryRow(ctx, insertUserQuery,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.Address, user.Role), user)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail returns user by email
func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return ur.get(ctx, selectUserByEmailQuery, email)
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return ur.get(ctx, selectUserByIDQuery, id)
}

func (ur *UserRepository) get(ctx context.Context, query string, arg string) (*models.User, error) {
	user := models.User{}
	if err := scanUser(ur.db.QueryRow(ctx, query, arg), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone, &user.Address, &user.Role, &user.CreatedAt)
}
