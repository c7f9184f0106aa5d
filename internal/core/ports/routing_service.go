package ports

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// RoutingService estimates travel times on the city delivery grid. Used by
// the timeline calculator to derive pickup times from dropoff expectations.
type RoutingService interface {
	// Duration estimates travel time between two grid locations.
	Duration(from kernel.Location, to kernel.Location) (time.Duration, error)
}
