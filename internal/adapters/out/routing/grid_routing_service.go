// Package routing implements the RoutingService port for the city delivery
// grid. Travel time is estimated from the Manhattan distance between grid
// cells at a fixed courier pace.
package routing

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// defaultStepDuration is the time a courier needs to cross one grid cell.
const defaultStepDuration = 2 * time.Minute

// GridRoutingService estimates travel times on the delivery grid.
type GridRoutingService struct {
	stepDuration time.Duration
}

// NewGridRoutingService creates a routing service with the default pace.
func NewGridRoutingService() GridRoutingService {
	return GridRoutingService{stepDuration: defaultStepDuration}
}

// NewGridRoutingServiceWithPace creates a routing service with a custom time
// per grid step. The pace must be positive.
func NewGridRoutingServiceWithPace(stepDuration time.Duration) (GridRoutingService, error) {
	if stepDuration <= 0 {
		return GridRoutingService{}, errs.NewValueIsInvalidError("step duration must be positive")
	}

	return GridRoutingService{stepDuration: stepDuration}, nil
}

// Duration estimates travel time between two grid locations.
func (s GridRoutingService) Duration(from kernel.Location, to kernel.Location) (time.Duration, error) {
	distance, err := from.Distance(to)
	if err != nil {
		return 0, err
	}

	return time.Duration(distance) * s.stepDuration, nil
}
