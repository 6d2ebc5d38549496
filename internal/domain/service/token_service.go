package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded access token for the given user.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks the signature and expiry of a token string and returns
	// its claims. Structural corruption, a signature mismatch and expiry all
	// collapse into a single verification error.
	Verify(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured token time-to-live.
	AccessTokenDuration() time.Duration
}
