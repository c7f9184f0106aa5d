package routing_test

import (
	"testing"
	"time"

	"ordering/internal/adapters/out/routing"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRoutingService_Duration(t *testing.T) {
	t.Run("should scale travel time with manhattan distance", func(t *testing.T) {
		service := routing.NewGridRoutingService()
		from, err := kernel.NewLocation(1, 1)
		require.NoError(t, err)
		to, err := kernel.NewLocation(4, 3)
		require.NoError(t, err)

		duration, err := service.Duration(from, to)

		require.NoError(t, err)
		// 5 grid steps at 2 minutes each
		assert.Equal(t, 10*time.Minute, duration)
	})

	t.Run("should return zero for the same location", func(t *testing.T) {
		service := routing.NewGridRoutingService()
		location, err := kernel.NewLocation(5, 5)
		require.NoError(t, err)

		duration, err := service.Duration(location, location)

		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), duration)
	})

	t.Run("should reject locations created without constructor", func(t *testing.T) {
		service := routing.NewGridRoutingService()
		location, err := kernel.NewLocation(5, 5)
		require.NoError(t, err)

		_, err = service.Duration(kernel.Location{}, location)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestNewGridRoutingServiceWithPace(t *testing.T) {
	t.Run("should use the custom pace", func(t *testing.T) {
		service, err := routing.NewGridRoutingServiceWithPace(30 * time.Second)
		require.NoError(t, err)
		from, err := kernel.NewLocation(1, 1)
		require.NoError(t, err)
		to, err := kernel.NewLocation(1, 2)
		require.NoError(t, err)

		duration, err := service.Duration(from, to)

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, duration)
	})

	t.Run("should reject non-positive pace", func(t *testing.T) {
		_, err := routing.NewGridRoutingServiceWithPace(0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
