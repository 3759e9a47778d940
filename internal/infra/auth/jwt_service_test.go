package auth

import (
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{
		Secret:   "test_signing_secret_very_long_for_testing",
		Issuer:   "storefront-test",
		Audience: "storefront-clients",
		TTL:      ttl,
	}

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig(2 * time.Hour))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	tokenString, err := jwtService.Generate(42, "alice", "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtService.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "storefront-test", claims.Issuer)
}

func TestJWTService_MissingSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{Issuer: "storefront-test"}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// A negative TTL produces a token that expired before it was issued,
	// standing in for a token validated hours after issuance.
	jwtService, err := NewJWTService(newTestTokenConfig(-3 * time.Hour))
	require.NoError(t, err)

	tokenString, err := jwtService.Generate(7, "bob", "admin")
	require.NoError(t, err)

	claims, err := jwtService.Validate(tokenString)
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig(2 * time.Hour))
	require.NoError(t, err)

	tokenString, err := jwtService.Generate(7, "bob", "admin")
	require.NoError(t, err)

	claims, err := jwtService.Validate(tokenString + "x")
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_WrongKey(t *testing.T) {
	issuingService, err := NewJWTService(newTestTokenConfig(2 * time.Hour))
	require.NoError(t, err)

	otherCfg := newTestTokenConfig(2 * time.Hour)
	otherCfg.Token.Secret = "a_completely_different_signing_secret"
	verifyingService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	tokenString, err := issuingService.Generate(7, "bob", "admin")
	require.NoError(t, err)

	claims, err := verifyingService.Validate(tokenString)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_WrongIssuer(t *testing.T) {
	issuingCfg := newTestTokenConfig(2 * time.Hour)
	issuingCfg.Token.Issuer = "someone-else"
	issuingService, err := NewJWTService(issuingCfg)
	require.NoError(t, err)

	verifyingService, err := NewJWTService(newTestTokenConfig(2 * time.Hour))
	require.NoError(t, err)

	tokenString, err := issuingService.Generate(7, "bob", "admin")
	require.NoError(t, err)

	claims, err := verifyingService.Validate(tokenString)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_GarbageToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig(2 * time.Hour))
	require.NoError(t, err)

	claims, err := jwtService.Validate("not.a.token")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}
