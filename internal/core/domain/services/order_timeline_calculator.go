package services

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ErrRoutingServiceIsRequired is returned when constructing a calculator
// without a routing service.
var ErrRoutingServiceIsRequired = errors.New("routing service is required")

// Preparation time rules by order total, applied top-down: the first rule
// whose threshold the total reaches wins.
const (
	preparationTimeSmall  = 10 * time.Minute
	preparationTimeMedium = 15 * time.Minute
	preparationTimeLarge  = 30 * time.Minute

	mediumOrderTotalCents = 2000
	largeOrderTotalCents  = 5000
)

// Timeline is the expected schedule of an order: when preparation should
// start, when the courier should pick it up, and when it should arrive.
type Timeline struct {
	PreparationExpectedAt time.Time
	PickupExpectedAt      time.Time
	DropoffExpectedAt     time.Time
}

// OrderTimelineCalculator derives an order's timeline backwards from the
// expected dropoff time: pickup is dropoff minus routed travel time from the
// store, preparation start is pickup minus a preparation time resolved from
// the order total.
type OrderTimelineCalculator struct {
	routing       ports.RoutingService
	storeLocation kernel.Location
}

// NewOrderTimelineCalculator creates a calculator for a store at the given
// grid location.
func NewOrderTimelineCalculator(routing ports.RoutingService, storeLocation kernel.Location) (*OrderTimelineCalculator, error) {
	if routing == nil {
		return nil, ErrRoutingServiceIsRequired
	}
	if err := storeLocation.Validate(); err != nil {
		return nil, err
	}

	return &OrderTimelineCalculator{
		routing:       routing,
		storeLocation: storeLocation,
	}, nil
}

// Calculate computes the timeline for the order given the expected dropoff
// time.
func (c *OrderTimelineCalculator) Calculate(aggregate *order.Order, dropoffExpectedAt time.Time) (Timeline, error) {
	if err := aggregate.Validate(); err != nil {
		return Timeline{}, err
	}

	travel, err := c.routing.Duration(c.storeLocation, aggregate.DeliveryLocation())
	if err != nil {
		return Timeline{}, err
	}

	pickup := dropoffExpectedAt.Add(-travel)

	return Timeline{
		PreparationExpectedAt: pickup.Add(-preparationTime(aggregate.TotalCents())),
		PickupExpectedAt:      pickup,
		DropoffExpectedAt:     dropoffExpectedAt,
	}, nil
}

func preparationTime(totalCents int) time.Duration {
	switch {
	case totalCents >= largeOrderTotalCents:
		return preparationTimeLarge
	case totalCents >= mediumOrderTotalCents:
		return preparationTimeMedium
	default:
		return preparationTimeSmall
	}
}
