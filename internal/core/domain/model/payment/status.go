package payment

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment attempt.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Cart is the embryonic status of a payment attached to an order that is
	// still being assembled by the customer.
	Cart

	// New is the status of a fresh payment attempt awaiting checkout.
	New

	// Authorized indicates the charge was authorized by the gateway.
	Authorized

	// Completed indicates the payment was captured. Final state.
	Completed

	// Failed indicates the charge was declined or errored. Final state.
	Failed

	// Cancelled indicates an authorized payment was voided. Final state.
	Cancelled
)

// Transition is the name of an edge in the payment transition graph.
type Transition string

const (
	// TransitionCreate moves a cart payment into New.
	TransitionCreate Transition = "create"
	// TransitionAuthorize marks a successful gateway authorization.
	TransitionAuthorize Transition = "authorize"
	// TransitionFail marks a declined or errored charge.
	TransitionFail Transition = "fail"
	// TransitionComplete marks a captured payment.
	TransitionComplete Transition = "complete"
	// TransitionCancel voids an authorized payment.
	TransitionCancel Transition = "cancel"
)

type edge struct {
	from Status
	name Transition
}

// transitions is the payment transition graph: (current status, transition
// name) -> next status. It holds no aggregate reference and is shared
// read-only by all concurrent callers.
var transitions = map[edge]Status{
	{Cart, TransitionCreate}:         New,
	{New, TransitionAuthorize}:       Authorized,
	{New, TransitionFail}:            Failed,
	{Authorized, TransitionFail}:     Failed,
	{Authorized, TransitionComplete}: Completed,
	{Authorized, TransitionCancel}:   Cancelled,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Cart:       "Cart",
		New:        "New",
		Authorized: "Authorized",
		Completed:  "Completed",
		Failed:     "Failed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Cart:       "Cart",
		New:        "New",
		Authorized: "Authorized",
		Completed:  "Completed",
		Failed:     "Failed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid. Unknown (0) and out-of-range
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
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
// transitions. Terminal payments are immutable history.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed || s == Cancelled
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
		return 0, errs.NewInvalidTransitionError("payment", s.String(), string(t))
	}
	return next, nil
}
