// Package order provides the Order aggregate root and its status state
// machine for the ordering platform. An order is created by the checkout
// subsystem while the customer is still shopping (Cart), then advances
// through the lifecycle driven by domain events.
//
// State transitions:
//
//	Cart ──create──> Created ──accept──> Accepted ──fulfill──> Fulfilled
//	                   │  │                  │
//	                   │  └──────cancel──────┴──> Cancelled
//	                   └─refuse─> Refused
//
// Key business rules:
//   - Status only ever advances along edges of the order transition graph;
//     an undefined edge yields errs.InvalidTransitionError and no mutation
//   - Orders carry items, a delivery location, and their payment attempts;
//     lifecycle code mutates only the status field
//   - At most one payment per order is active (non-terminal) at a time;
//     terminal payments are immutable history
package order
