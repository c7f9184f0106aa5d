package services

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

// PaymentProcessor reopens an order for checkout after a failed attempt by
// attaching a fresh payment in New status. The failed payment stays on the
// order as history.
//
// Business rules:
//   - The order must be valid
//   - A new attempt is opened only when no active payment remains
type PaymentProcessor struct{}

// NewPaymentProcessor creates a new PaymentProcessor instance.
func NewPaymentProcessor() PaymentProcessor {
	return PaymentProcessor{}
}

// Process attaches a fresh payment attempt to the order unless one is
// already active. It mutates the aggregate in memory only.
func (PaymentProcessor) Process(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := aggregate.ActivePayment(); err == nil {
		return nil
	}

	p, err := payment.NewPayment(kernel.NewUUID(), aggregate.ID())
	if err != nil {
		return err
	}

	return aggregate.AddPayment(p)
}
