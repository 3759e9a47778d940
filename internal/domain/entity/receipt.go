// Package entity contains the core business objects of the project.
package entity

// Receipt is the result record of a successful purchase.
type Receipt struct {
	ProductName    string // The product's display name as stored in the catalog.
	Quantity       int    // Units purchased.
	RemainingStock int    // Stock left after the decrement was applied.
}
