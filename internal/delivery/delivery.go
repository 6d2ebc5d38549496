// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport (HTTP today) started by the application.
type Delivery interface {
	Serve(ctx context.Context) error
}
