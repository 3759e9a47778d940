// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its store-assigned identifier.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByUsername retrieves a single account by its normalized username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// List retrieves all accounts ordered by username.
	List(ctx context.Context) ([]*entity.Account, error)

	// Create persists a new account. The store enforces username uniqueness;
	// a conflicting insert surfaces as a domain conflict error, never a duplicate row.
	Create(ctx context.Context, account *entity.Account) error
}
