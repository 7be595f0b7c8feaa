// Package delivery defines the contract every transport front end fulfills.
package delivery

import "context"

// Delivery is a transport serving the catalog engine until its context ends.
type Delivery interface {
	Serve(ctx context.Context) error
}
