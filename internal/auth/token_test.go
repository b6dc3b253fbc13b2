package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("f53ac685bbceebd75043e6be2e06ee07")

func TestAuthToken_CreateAndVerify(t *testing.T) {
	at := NewAuthToken(testKey)

	token, err := at.CreateToken(&models.User{ID: "user-1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := at.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
}

func TestAuthToken_CreateToken_NoUser(t *testing.T) {
	at := NewAuthToken(testKey)

	_, err := at.CreateToken(&models.User{})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthToken_VerifyToken(t *testing.T) {
	other := NewAuthToken([]byte("another key"))
	foreign, err := other.CreateToken(&models.User{ID: "user-1"})
	require.NoError(t, err)

	expiredIssuer := NewAuthToken(testKey)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expired, err := expiredIssuer.CreateToken(&models.User{ID: "user-1"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "garbage_token",
			token:   "not a token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "signed_with_another_key",
			token:   foreign,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired_token",
			token:   expired,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "unsigned_token",
			token:   none,
			wantErr: ErrInvalidToken,
		},
	}

	at := NewAuthToken(testKey)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload, err := at.VerifyToken(test.token)
			assert.ErrorIs(t, err, test.wantErr)
			assert.Nil(t, payload)
		})
	}
}
