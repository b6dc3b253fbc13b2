package models

import "time"

// user roles
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User is registered user entity
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         int
	CreatedAt    time.Time
}

// IsAdmin reports whether user has administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TokenPayload is data carried by authorization token
type TokenPayload struct {
	UserID string
}
