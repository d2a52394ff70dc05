package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

const secret = "secret-key-for-testing"

func TestIssueAndVerifyToken(t *testing.T) {
	userID := uuid.New()

	signed, err := IssueToken(userID, secret, time.Now())
	require.NoError(t, err)

	c := context.Background()
	token, err := VerifyToken(c, signed, secret)
	require.NoError(t, err)

	c = AttachJwtToken(c, token)
	actual, err := UserIDFromJwtToken(c)
	require.NoError(t, err)
	assert.Equal(t, userID, actual)
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "given token signed with another key should return invalid token",
			token: func(t *testing.T) string {
				signed, err := IssueToken(uuid.New(), "another-key", time.Now())
				require.NoError(t, err)
				return signed
			},
		},
		{
			name: "given expired token should return invalid token",
			token: func(t *testing.T) string {
				signed, err := IssueToken(uuid.New(), secret, time.Now().Add(-2*TokenLifetime))
				require.NoError(t, err)
				return signed
			},
		},
		{
			name: "given garbage should return invalid token",
			token: func(t *testing.T) string {
				return "not-a-jwt"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(context.Background(), tt.token(t), secret)
			assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
		})
	}
}

func TestUserIDFromJwtToken(t *testing.T) {
	t.Run("given empty context should return empty auth", func(t *testing.T) {
		_, err := UserIDFromJwtToken(context.Background())
		assert.ErrorIs(t, err, inErrors.ErrEmptyAuth)
	})

	t.Run("given subject which is not uuid should return invalid token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin"})
		c := AttachJwtToken(context.Background(), token)
		_, err := UserIDFromJwtToken(c)
		assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
	})
}
