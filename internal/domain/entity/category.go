// Package entity contains the core business objects of the project.
package entity

import "time"

// Category groups products in the catalog. Names are unique.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
