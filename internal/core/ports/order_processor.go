package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderProcessor prepares an order for the next checkout attempt after a
// failed one, typically by opening a fresh payment.
type OrderProcessor interface {
	// Process runs the post-failure processing for the order. It mutates the
	// aggregate in memory; persistence is the caller's concern.
	Process(ctx context.Context, aggregate *order.Order) error
}
