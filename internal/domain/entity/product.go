// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Product is a catalog item with a purchasable stock quantity.
// Stock is always >= 0; it is only decremented through the inventory
// compare-and-swap path in the product repository.
type Product struct {
	ID          int64     // Store-assigned numeric identifier.
	Name        string    // Display name, unique per normalized form.
	Description string    // Free-text description.
	Price       float64   // Unit price.
	ImgURL      string    // URL of the product image.
	SKU         string    // Stock keeping unit code, e.g. "TSH-WH-M".
	Stock       int       // Units available for purchase, never negative.
	CategoryID  int64     // Foreign key to the owning category.
	Category    *Category // The owning category, populated on reads.
	CreatedAt   time.Time // Timestamp of when this product was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}

// NormalizeProductName trims surrounding whitespace and case-folds a product
// name for lookup comparisons.
func NormalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
