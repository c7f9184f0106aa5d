// Package services contains stateless domain services of the ordering
// platform: logic that spans aggregates or collaborates with ports and
// therefore does not belong on a single aggregate.
package services
