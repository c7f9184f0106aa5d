// Package ports defines the contracts between the ordering core and
// infrastructure. These interfaces establish dependency inversion: the core
// depends on them, adapters implement them.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored together with their items and payment attempts.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// status changes of its payments.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items and payment history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
