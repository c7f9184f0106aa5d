package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items, payment history and the
// estimated delivery timeline.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full customer-facing view of one order.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	Status     string
	Location   kernel.Location
	TotalCents int
	Items      []OrderItemResponse
	Payments   []OrderPaymentResponse
	Timeline   *OrderTimelineResponse
}

// OrderItemResponse is one ordered line in the order view.
type OrderItemResponse struct {
	Name           string
	Quantity       int
	UnitPriceCents int
}

// OrderPaymentResponse is one payment attempt in the order view.
type OrderPaymentResponse struct {
	ID        kernel.UUID
	Status    string
	LastError *string
}

// OrderTimelineResponse is the estimated schedule of the order.
type OrderTimelineResponse struct {
	PreparationExpectedAt time.Time
	PickupExpectedAt      time.Time
	DropoffExpectedAt     time.Time
}
