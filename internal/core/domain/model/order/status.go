package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Cart is the initial status while the customer is still assembling
	// the order. The order is not yet visible to the store.
	Cart

	// Created indicates checkout succeeded and the order awaits a decision
	// by the store.
	Created

	// Accepted indicates the store accepted the order for preparation.
	Accepted

	// Refused indicates the store declined the order. Final state.
	Refused

	// Cancelled indicates the order was cancelled before fulfilment. Final state.
	Cancelled

	// Fulfilled indicates the order was delivered to the customer. Final state.
	Fulfilled
)

// Transition is the name of an edge in the order transition graph.
type Transition string

const (
	// TransitionCreate moves a cart order into Created once checkout succeeds.
	TransitionCreate Transition = "create"
	// TransitionAccept records the store accepting the order.
	TransitionAccept Transition = "accept"
	// TransitionRefuse records the store declining the order.
	TransitionRefuse Transition = "refuse"
	// TransitionCancel cancels a created or accepted order.
	TransitionCancel Transition = "cancel"
	// TransitionFulfill records delivery of an accepted order.
	TransitionFulfill Transition = "fulfill"
)

type edge struct {
	from Status
	name Transition
}

// transitions is the order transition graph: (current status, transition
// name) -> next status. It holds no aggregate reference and is shared
// read-only by all concurrent callers.
var transitions = map[edge]Status{
	{Cart, TransitionCreate}:      Created,
	{Created, TransitionAccept}:   Accepted,
	{Created, TransitionRefuse}:   Refused,
	{Created, TransitionCancel}:   Cancelled,
	{Accepted, TransitionCancel}:  Cancelled,
	{Accepted, TransitionFulfill}: Fulfilled,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Cart:      "Cart",
		Created:   "Created",
		Accepted:  "Accepted",
		Refused:   "Refused",
		Cancelled: "Cancelled",
		Fulfilled: "Fulfilled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Cart:      "Cart",
		Created:   "Created",
		Accepted:  "Accepted",
		Refused:   "Refused",
		Cancelled: "Cancelled",
		Fulfilled: "Fulfilled",
	}
}

// Validate checks if the Status value is valid. Unknown (0) and out-of-range
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements
// fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is a final state with no outgoing
// transitions.
func (s Status) IsTerminal() bool {
	return s == Refused || s == Cancelled || s == Fulfilled
}

// Apply resolves the transition graph edge for the given transition name.
//
// Returns:
//   - (next status, nil) when an edge exists from the current status
//   - (0, *errs.InvalidTransitionError) otherwise; the current status is
//     never mutated on rejection
func (s Status) Apply(t Transition) (Status, error) {
	next, ok := transitions[edge{from: s, name: t}]
	if !ok {
		return 0, errs.NewInvalidTransitionError("order", s.String(), string(t))
	}
	return next, nil
}
