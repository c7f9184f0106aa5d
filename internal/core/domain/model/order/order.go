package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoItems is returned when attempting to create an order without items.
	ErrNoItems = errors.New("order must contain at least one item")

	// ErrPaymentBelongsToOtherOrder is returned when attaching a payment owned
	// by a different order.
	ErrPaymentBelongsToOtherOrder = errors.New("payment belongs to another order")
)

// Order is the aggregate root of the ordering domain. It owns the order's
// identity, content and payment history, and enforces lifecycle transitions
// through the order transition graph.
//
// Invariants:
//   - Must have a valid unique identifier and delivery location
//   - Must contain at least one item
//   - Status only ever advances along edges of the order transition graph
//   - Payments attached to the order reference this order's identifier
//
// Lifecycle code mutates only the status field; structure (items, payments
// membership) is owned by the checkout subsystem and the order processor.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// deliveryLocation is the drop-off point on the city grid
	deliveryLocation kernel.Location

	// items are the ordered lines (at least one)
	items []Item

	// payments are all checkout attempts made for this order, oldest first
	payments []*payment.Payment

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order in Cart status with the given items. This is the
// entry point used by the checkout subsystem while the customer is shopping.
func NewOrder(id kernel.UUID, deliveryLocation kernel.Location, items []Item) (*Order, error) {
	order := &Order{
		status:        Cart,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDeliveryLocation(deliveryLocation),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence with an explicit status
// and payment history. The status must be valid.
func RestoreOrder(
	id kernel.UUID,
	deliveryLocation kernel.Location,
	items []Item,
	status Status,
	payments []*payment.Payment,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDeliveryLocation(deliveryLocation),
		order.setItems(items),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	for _, p := range payments {
		if err := order.AddPayment(p); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DeliveryLocation returns the drop-off point for the order.
func (o *Order) DeliveryLocation() kernel.Location {
	return o.deliveryLocation
}

// Items returns the ordered lines.
func (o *Order) Items() []Item {
	return o.items
}

// TotalCents returns the order total, derived from its items.
func (o *Order) TotalCents() int {
	total := 0
	for _, item := range o.items {
		total += item.TotalCents()
	}
	return total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Payments returns all payment attempts for the order, oldest first.
func (o *Order) Payments() []*payment.Payment {
	return o.payments
}

// PaymentByID returns the payment with the given identifier, or an
// ObjectNotFoundError if no such payment is attached to the order.
func (o *Order) PaymentByID(id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, p := range o.payments {
		if p.ID().IsEqual(id) {
			return p, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("payment", id.String())
}

// ActivePayment returns the order's current non-terminal payment, or an
// ObjectNotFoundError when every payment is terminal history.
func (o *Order) ActivePayment() (*payment.Payment, error) {
	for _, p := range o.payments {
		if !p.Status().IsTerminal() {
			return p, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("active payment", o.id.String())
}

// AddPayment attaches a payment attempt to the order. The payment must be
// valid and reference this order's identifier.
func (o *Order) AddPayment(p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if !p.OrderID().IsEqual(o.id) {
		return ErrPaymentBelongsToOtherOrder
	}

	o.payments = append(o.payments, p)
	return nil
}

// Create transitions the order to Created (valid from Cart).
func (o *Order) Create() error {
	return o.apply(TransitionCreate)
}

// Accept transitions the order to Accepted (valid from Created).
func (o *Order) Accept() error {
	return o.apply(TransitionAccept)
}

// Refuse transitions the order to Refused (valid from Created).
func (o *Order) Refuse() error {
	return o.apply(TransitionRefuse)
}

// Cancel transitions the order to Cancelled (valid from Created and Accepted).
func (o *Order) Cancel() error {
	return o.apply(TransitionCancel)
}

// Fulfill transitions the order to Fulfilled (valid from Accepted).
func (o *Order) Fulfill() error {
	return o.apply(TransitionFulfill)
}

// ApplyTransition drives the order transition graph by transition name.
// The named methods above are shorthands for the fixed edges.
func (o *Order) ApplyTransition(t Transition) error {
	return o.apply(t)
}

func (o *Order) apply(t Transition) error {
	newStatus, err := o.status.Apply(t)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Memento captures the order's mutable state so a caller can roll an
// in-memory mutation back when persistence fails. Only the status is
// lifecycle-mutable; items and payment membership are structural.
type Memento struct {
	status Status
}

// Memento returns a snapshot of the order's mutable fields.
func (o *Order) Memento() Memento {
	return Memento{status: o.status}
}

// RestoreMemento reverts the order's mutable fields to a prior snapshot.
func (o *Order) RestoreMemento(m Memento) {
	o.status = m.status
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
