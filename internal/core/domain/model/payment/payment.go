package payment

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment represents one checkout attempt against an order.
//
// Invariants:
//   - Must have a valid unique identifier and a valid owning order identifier
//   - Status only ever advances along edges of the payment transition graph
//   - lastError is set when a checkout attempt fails and cleared never
//
// The lifecycle-driving code mutates only status and lastError; identity and
// ownership are fixed at construction.
type Payment struct {
	// id is the unique identifier for the payment attempt
	id kernel.UUID

	// orderID identifies the order this payment belongs to
	orderID kernel.UUID

	// status represents the current state in the payment lifecycle
	status Status

	// lastError holds the failure reason of a failed checkout attempt
	lastError *string

	// isConstructed ensures the payment was created via a constructor
	isConstructed bool
}

// NewPayment creates a fresh payment attempt in New status for the given order.
func NewPayment(id kernel.UUID, orderID kernel.UUID) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		status:        New,
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence with an explicit
// status and optional last error. The status must be valid.
func RestorePayment(id kernel.UUID, orderID kernel.UUID, status Status, lastError *string) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		status:        status,
		lastError:     lastError,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two payments by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the owning order.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Status returns the current status of the payment.
func (p *Payment) Status() Status {
	return p.status
}

// LastError returns the failure reason of the last failed checkout attempt,
// or nil if the payment never failed.
func (p *Payment) LastError() *string {
	return p.lastError
}

// SetLastError records the failure reason reported by the checkout.
func (p *Payment) SetLastError(reason string) {
	p.lastError = &reason
}

// Authorize transitions the payment to Authorized (valid from New).
func (p *Payment) Authorize() error {
	return p.apply(TransitionAuthorize)
}

// Fail transitions the payment to Failed (valid from New and Authorized).
func (p *Payment) Fail() error {
	return p.apply(TransitionFail)
}

// Complete transitions the payment to Completed (valid from Authorized).
func (p *Payment) Complete() error {
	return p.apply(TransitionComplete)
}

// Cancel transitions the payment to Cancelled (valid from Authorized).
func (p *Payment) Cancel() error {
	return p.apply(TransitionCancel)
}

func (p *Payment) apply(t Transition) error {
	newStatus, err := p.status.Apply(t)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Memento captures the mutable state of a payment so a caller can roll an
// in-memory mutation back when persistence fails.
type Memento struct {
	status    Status
	lastError *string
}

// Memento returns a snapshot of the payment's mutable fields.
func (p *Payment) Memento() Memento {
	return Memento{status: p.status, lastError: p.lastError}
}

// RestoreMemento reverts the payment's mutable fields to a prior snapshot.
func (p *Payment) RestoreMemento(m Memento) {
	p.status = m.status
	p.lastError = m.lastError
}
