// Package delivery defines the contract every transport endpoint of the
// application fulfills.
package delivery

import "context"

// Delivery is a long-running transport (an HTTP server, a worker) managed
// by the application lifecycle.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
