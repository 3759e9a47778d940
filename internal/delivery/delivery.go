// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is implemented by each server the application runs (HTTP today).
// Serve blocks until the server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
