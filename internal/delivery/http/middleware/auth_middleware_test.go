package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, string, string) {
	cfg := &config.Config{
		Token: config.TokenConfig{
			Secret:   "test-secret",
			Issuer:   "storefront",
			Audience: "storefront-api",
			TTL:      time.Hour,
		},
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	adminToken, err := tokenService.Generate(1, "root", "admin")
	require.NoError(t, err)
	customerToken, err := tokenService.Generate(2, "alice", "customer")
	require.NoError(t, err)

	return NewAuthMiddleware(tokenService), adminToken, customerToken
}

func performRequest(m *AuthMiddleware, extraMiddleware echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "passed")
	}
	chain := m.Authenticate(next)
	if extraMiddleware != nil {
		chain = m.Authenticate(extraMiddleware(next))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = chain(c)

	return rec
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	m, _, customerToken := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotAccountID int64
	var gotRole string
	next := func(c echo.Context) error {
		gotAccountID, _ = c.Get(ContextKeyAccountID).(int64)
		gotRole, _ = c.Get(ContextKeyRole).(string)

		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), gotAccountID)
	assert.Equal(t, "customer", gotRole)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rec := performRequest(m, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	m, _, customerToken := newTestAuthMiddleware(t)

	rec := performRequest(m, nil, "Basic "+customerToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_GarbageToken(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rec := performRequest(m, nil, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRole_AdminAllowed(t *testing.T) {
	m, adminToken, _ := newTestAuthMiddleware(t)

	rec := performRequest(m, m.RequireRole(entity.RoleAdmin), "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RequireRole_CustomerRejected(t *testing.T) {
	m, _, customerToken := newTestAuthMiddleware(t)

	rec := performRequest(m, m.RequireRole(entity.RoleAdmin), "Bearer "+customerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
