package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rookgm/gopherstore/internal/models"
)

type UserService interface {
	// Register creates new user
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	// GetUser returns user by id
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type AuthService interface {
	// Login checks credentials and returns token
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// UserHandler represents HTTP handler for registration
type UserHandler struct {
	us UserService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(us UserService) *UserHandler {
	return &UserHandler{us: us}
}

// AuthHandler represents HTTP handler for login
type AuthHandler struct {
	as AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(as AuthService) *AuthHandler {
	return &AuthHandler{as: as}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Address  string `json:"address" validate:"omitempty,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// RegisterUser registers new user
// 201 — user registered;
// 400 — malformed body;
// 409 — email already registered;
// 500 — internal error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := uh.us.Register(r.Context(), &models.User{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		}, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				writeMessage(w, http.StatusConflict, "email already registered")
				return
			}
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, userEnvelope{
			Success: true,
			Message: "User registered successfully",
			User:    newUserResponse(user),
		})
	}
}

// LoginUser authenticates user, token is returned in body and auth cookie
// 200 — user authenticated;
// 400 — malformed body;
// 401 — invalid email or password;
// 500 — internal error.
func (ah *AuthHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		token, user, err := ah.as.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, userEnvelope{
			Success: true,
			Message: "Login successfully",
			User:    newUserResponse(user),
			Token:   token,
		})
	}
}
