package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
)

// Claims are the access-token claims this client reads. The subject carries
// the user id; email is the custom claim the auth backend attaches.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// identityFromToken extracts the user identity and expiry from an access
// token. The token signature is the backend's concern; this client only needs
// the claims, so the token is decoded without verification (the backend
// rejects forged tokens on every call anyway).
func identityFromToken(tokenString string) (*models.User, time.Time, error) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, time.Time{}, common.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, time.Time{}, common.ErrUnauthorized
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return &models.User{ID: claims.Subject, Email: claims.Email}, expires, nil
}
