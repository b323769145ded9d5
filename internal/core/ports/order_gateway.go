// Package ports defines the contracts between the partner client's use cases
// and the outside world: the order backend, the auth backend, local session
// storage and the device camera.
package ports

import (
	"context"
	"time"

	"deliverypartner/internal/core/domain/model/order"
)

// TimeWindow bounds a query by delivery time, both ends inclusive.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// OrderGateway is the order half of the backend REST contract.
// Every method issues exactly one request; there are no retries and no caching.
type OrderGateway interface {
	// ListAll fetches every order (GET /orders, unscoped legacy listing).
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ListAssigned fetches the orders assigned to a partner
	// (GET /orders/delivery/{userId}). A nil window leaves the query unbounded.
	ListAssigned(ctx context.Context, partnerID string, window *TimeWindow) ([]*order.Order, error)

	// Get fetches one order (GET /orders/{orderId}).
	// Returns errs.ErrObjectNotFound when the backend does not know the id.
	Get(ctx context.Context, orderID string) (*order.Order, error)

	// UpdateStatus requests a transition (PUT /orders/{orderId}/status) and
	// returns the order as the backend stored it.
	UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
}
