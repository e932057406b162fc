package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meslee/moneyledger/internal/common"
)

func mintToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIdentityFromToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mintToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: "me@example.com",
	})

	user, expiresAt, err := identityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "me@example.com", user.Email)
	assert.True(t, expiresAt.Equal(exp))
}

func TestIdentityFromTokenNoExpiry(t *testing.T) {
	token := mintToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})

	_, expiresAt, err := identityFromToken(token)
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())
}

func TestIdentityFromTokenMissingSubject(t *testing.T) {
	token := mintToken(t, Claims{Email: "me@example.com"})

	_, _, err := identityFromToken(token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestIdentityFromTokenGarbage(t *testing.T) {
	_, _, err := identityFromToken("not.a.token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
