// Package eventhandlers contains the order lifecycle reactor: the event
// handler that drives the Order and Payment state machines in response to
// domain events, and the dispatcher that feeds it while keeping per-order
// processing serial.
package eventhandlers

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for event handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order aggregate mutations, payments
	// included.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
