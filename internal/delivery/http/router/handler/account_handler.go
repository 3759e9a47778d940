// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Request / Response models ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type accountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token   string           `json:"token"`
	Account *accountResponse `json:"account"`
}

type tokenClaimsResponse struct {
	AccountID int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

func toAccountResponse(output *usecase.AccountOutput) *accountResponse {
	if output == nil {
		return nil
	}

	return &accountResponse{
		ID:       output.ID,
		Username: output.Username,
		Name:     output.Name,
		Role:     output.Role.String(),
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
		Role:     input.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(output), "Account registered successfully")
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token:   output.Token,
		Account: toAccountResponse(output.Account),
	}, "Login successful")
}

// VerifyToken handles an explicit token verification request and echoes back
// the identity facts carried by a valid token.
func (h *AccountHandler) VerifyToken(c echo.Context) error {
	var input verifyTokenRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token verification input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	claims, err := h.uc.VerifyToken(c.Request().Context(), input.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenClaimsResponse{
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Role:      claims.Role,
	}, "Token is valid")
}

// GetAccount handles the request to fetch a single account by ID.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Account ID must be an integer")
	}

	output, err := h.uc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(output), "Account retrieved successfully")
}

// ListAccounts handles the request to list all accounts.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	outputs, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	accounts := make([]*accountResponse, 0, len(outputs))
	for _, output := range outputs {
		accounts = append(accounts, toAccountResponse(output))
	}

	return response.Success(c, http.StatusOK, accounts, "Accounts retrieved successfully")
}

// Profile returns the identity of the calling account, as established by the
// authentication middleware.
func (h *AccountHandler) Profile(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(int64)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid account ID in token")
	}

	output, err := h.uc.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(output), "Profile retrieved successfully")
}
