// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a runnable transport server. Serve blocks until the server
// stops; shutdown is coordinated through the Fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
