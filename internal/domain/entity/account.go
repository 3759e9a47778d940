// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Account is the identity record for a person who can call the API.
// The Username field is always stored in its normalized form (see NormalizeUsername),
// so equality comparisons and the database unique constraint both operate on it directly.
type Account struct {
	ID           int64     // Store-assigned numeric identifier.
	Username     string    // Normalized login identifier, immutable once set.
	Name         string    // Optional display name, shown as typed by the user.
	PasswordHash string    // bcrypt hash of the password. The raw password is never stored.
	Role         Role      // The account's role, controlling access to admin operations.
	CreatedAt    time.Time // Timestamp of when this account was registered.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// NormalizeUsername trims surrounding whitespace and case-folds a username.
// All lookups and the stored username column use this form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
