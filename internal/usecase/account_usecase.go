// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AccountOutput is the external representation of an account. It
// deliberately carries no password hash.
type AccountOutput struct {
	ID       int64
	Username string
	Name     string
	Role     entity.Role
}

// LoginOutput returns the signed token after a successful login.
type LoginOutput struct {
	Token   string
	Account *AccountOutput
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AccountOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	VerifyToken(ctx context.Context, tokenString string) (*service.Claims, error)
	GetAccount(ctx context.Context, id int64) (*AccountOutput, error)
	ListAccounts(ctx context.Context) ([]*AccountOutput, error)
}
