package ports

import (
	"ordering/internal/core/domain/model/order"
)

// OrderSerializer renders an order into a wire representation for publishing.
// Groups select which view of the order is rendered, e.g. the "order" group
// produces the public storefront view.
type OrderSerializer interface {
	// Serialize renders the order in the given format ("json") restricted to
	// the given serialization groups.
	Serialize(aggregate *order.Order, format string, groups []string) ([]byte, error)
}
