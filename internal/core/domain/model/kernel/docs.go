// Package kernel contains shared value objects used across the ordering
// domain model. These are immutable, validated building blocks with no
// dependencies on any aggregate:
//
//   - UUID: identity for orders and payments
//   - Location: a point on the city delivery grid
//
// All kernel types must be created through their constructor functions; zero
// values fail Validate.
package kernel
