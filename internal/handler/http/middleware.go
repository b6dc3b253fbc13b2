package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/service"
)

type contextKey string

const (
	authPayloadKey contextKey = "auth_payload"
	authCookieName            = "auth_token"
)

// AuthMiddleware gets the token from the Authorization header or cookie and passes its payload to the context.
// The header may carry "Bearer <token>" or the bare token.
func AuthMiddleware(ts service.TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "authorization token missing")
				return
			}

			payload, err := ts.VerifyToken(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), authPayloadKey, payload)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets through users with admin role, the role is read from the user store on every request
func RequireAdmin(us UserService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := getAuthPayload(r.Context(), authPayloadKey)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := us.GetUser(r.Context(), payload.UserID)
			if err != nil {
				writeError(w, r, err)
				return
			}

			if !user.IsAdmin() {
				writeError(w, r, models.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return header
	}

	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// getAuthPayload extracts authorization token payload from context
func getAuthPayload(ctx context.Context, key contextKey) (*models.TokenPayload, bool) {
	payload, ok := ctx.Value(key).(*models.TokenPayload)
	return payload, ok && payload != nil
}

// buyerID returns authenticated user id
func buyerID(r *http.Request) (string, error) {
	payload, ok := getAuthPayload(r.Context(), authPayloadKey)
	if !ok || payload.UserID == "" {
		return "", models.ErrUnauthorized
	}
	return payload.UserID, nil
}
