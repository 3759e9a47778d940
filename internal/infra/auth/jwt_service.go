// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// defaultTokenTTL is the session lifetime used when none is configured.
const defaultTokenTTL = 2 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   []byte        // Shared secret for HMAC-SHA-256 signing.
	issuer   string        // Issuer claim stamped on and required from every token.
	audience string        // Audience claim stamped on and required from every token.
	ttl      time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// A missing signing secret is a startup failure, not a per-request error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Token.Secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	ttl := cfg.Token.TTL
	if ttl == 0 {
		ttl = defaultTokenTTL
	}

	return &jwtService{
		secret:   []byte(cfg.Token.Secret),
		issuer:   cfg.Token.Issuer,
		audience: cfg.Token.Audience,
		ttl:      ttl,
	}, nil
}

// Generate mints a signed session token carrying the account's identity claims.
func (s *jwtService) Generate(accountID int64, username, role string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		AccountID: accountID,
		Username:  username,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate checks the token's signature, issuer, audience and expiry, and
// returns the embedded claims. Expiry is reported separately from all other
// verification failures.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("session token expired")
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}

	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token failed verification")
	}

	return claims, nil
}
