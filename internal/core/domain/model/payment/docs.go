// Package payment provides the Payment entity and its status state machine.
// A payment belongs to exactly one order; an order may accumulate several
// payments over its life, one per checkout attempt. Terminal payments
// (Completed, Failed, Cancelled) are immutable history; only the active
// payment of an order may still change state.
//
// State transitions:
//
//	Cart ──create──> New ──authorize──> Authorized ──complete──> Completed
//	                  │                     │    │
//	                  └───────fail──────────┘    └──cancel──> Cancelled
//	                           │
//	                           v
//	                        Failed
//
// The transition table is a pure lookup shared read-only by all callers;
// applying a transition with no edge from the current status yields an
// errs.InvalidTransitionError.
package payment
