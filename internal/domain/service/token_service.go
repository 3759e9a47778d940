package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the identity facts embedded in a session token.
type Claims struct {
	AccountID int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate mints a signed session token for the given account identity.
	// Issuance is stateless; nothing is persisted.
	Generate(accountID int64, username, role string) (string, error)

	// Validate checks a token string's signature, issuer, audience and expiry,
	// and returns its claims. It performs no I/O.
	Validate(tokenString string) (*Claims, error)
}
