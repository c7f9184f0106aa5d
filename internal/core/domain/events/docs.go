// Package events defines the domain events that drive the order lifecycle.
//
// Two families exist. Checkout events (checkout:succeeded, checkout:failed)
// report the outcome of a checkout attempt and carry the payment that was
// attempted. State change events (order:created, order:accepted, order:refused,
// order:cancelled, order:fulfilled) announce a requested lifecycle step for
// an order.
//
// Events are immutable facts. Handlers react to them; they never mutate an
// event after construction.
package events
