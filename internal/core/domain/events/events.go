package events

import (
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// Message names of the domain events as they appear on the wire.
const (
	MessageOrderCreated      = "order:created"
	MessageOrderAccepted     = "order:accepted"
	MessageOrderRefused      = "order:refused"
	MessageOrderCancelled    = "order:cancelled"
	MessageOrderFulfilled    = "order:fulfilled"
	MessageCheckoutSucceeded = "checkout:succeeded"
	MessageCheckoutFailed    = "checkout:failed"
)

// Event is a domain event concerning a single order.
type Event interface {
	// MessageName returns the wire name of the event, e.g. "order:created".
	MessageName() string

	// Order returns the order the event concerns.
	Order() *order.Order
}

// OrderCreated announces that checkout produced a new order for the store.
type OrderCreated struct {
	order *order.Order
}

// NewOrderCreated creates an OrderCreated event for the given order.
func NewOrderCreated(o *order.Order) (*OrderCreated, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &OrderCreated{order: o}, nil
}

// MessageName implements Event.
func (e *OrderCreated) MessageName() string { return MessageOrderCreated }

// Order implements Event.
func (e *OrderCreated) Order() *order.Order { return e.order }

// OrderAccepted announces that the store accepted the order.
type OrderAccepted struct {
	order *order.Order
}

// NewOrderAccepted creates an OrderAccepted event for the given order.
func NewOrderAccepted(o *order.Order) (*OrderAccepted, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &OrderAccepted{order: o}, nil
}

// MessageName implements Event.
func (e *OrderAccepted) MessageName() string { return MessageOrderAccepted }

// Order implements Event.
func (e *OrderAccepted) Order() *order.Order { return e.order }

// OrderRefused announces that the store declined the order.
type OrderRefused struct {
	order *order.Order
}

// NewOrderRefused creates an OrderRefused event for the given order.
func NewOrderRefused(o *order.Order) (*OrderRefused, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &OrderRefused{order: o}, nil
}

// MessageName implements Event.
func (e *OrderRefused) MessageName() string { return MessageOrderRefused }

// Order implements Event.
func (e *OrderRefused) Order() *order.Order { return e.order }

// OrderCancelled announces that the order was cancelled before fulfilment.
type OrderCancelled struct {
	order *order.Order
}

// NewOrderCancelled creates an OrderCancelled event for the given order.
func NewOrderCancelled(o *order.Order) (*OrderCancelled, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &OrderCancelled{order: o}, nil
}

// MessageName implements Event.
func (e *OrderCancelled) MessageName() string { return MessageOrderCancelled }

// Order implements Event.
func (e *OrderCancelled) Order() *order.Order { return e.order }

// OrderFulfilled announces delivery of the order. It carries the payment that
// settles on fulfilment.
type OrderFulfilled struct {
	order   *order.Order
	payment *payment.Payment
}

// NewOrderFulfilled creates an OrderFulfilled event for the given order and
// the payment to be completed.
func NewOrderFulfilled(o *order.Order, p *payment.Payment) (*OrderFulfilled, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &OrderFulfilled{order: o, payment: p}, nil
}

// MessageName implements Event.
func (e *OrderFulfilled) MessageName() string { return MessageOrderFulfilled }

// Order implements Event.
func (e *OrderFulfilled) Order() *order.Order { return e.order }

// Payment returns the payment that settles on fulfilment.
func (e *OrderFulfilled) Payment() *payment.Payment { return e.payment }

// CheckoutSucceeded reports that a checkout attempt went through and the
// payment can be authorized.
type CheckoutSucceeded struct {
	order   *order.Order
	payment *payment.Payment
}

// NewCheckoutSucceeded creates a CheckoutSucceeded event for the given order
// and the payment that was attempted.
func NewCheckoutSucceeded(o *order.Order, p *payment.Payment) (*CheckoutSucceeded, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &CheckoutSucceeded{order: o, payment: p}, nil
}

// MessageName implements Event.
func (e *CheckoutSucceeded) MessageName() string { return MessageCheckoutSucceeded }

// Order implements Event.
func (e *CheckoutSucceeded) Order() *order.Order { return e.order }

// Payment returns the payment that was attempted.
func (e *CheckoutSucceeded) Payment() *payment.Payment { return e.payment }

// CheckoutFailed reports that a checkout attempt did not go through. Reason
// describes the failure and ends up on the payment's last error.
type CheckoutFailed struct {
	order   *order.Order
	payment *payment.Payment
	reason  string
}

// NewCheckoutFailed creates a CheckoutFailed event for the given order, the
// payment that was attempted and a non-empty failure reason.
func NewCheckoutFailed(o *order.Order, p *payment.Payment, reason string) (*CheckoutFailed, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}
	return &CheckoutFailed{order: o, payment: p, reason: reason}, nil
}

// MessageName implements Event.
func (e *CheckoutFailed) MessageName() string { return MessageCheckoutFailed }

// Order implements Event.
func (e *CheckoutFailed) Order() *order.Order { return e.order }

// Payment returns the payment that was attempted.
func (e *CheckoutFailed) Payment() *payment.Payment { return e.payment }

// Reason returns the failure reason reported by the checkout.
func (e *CheckoutFailed) Reason() string { return e.reason }
