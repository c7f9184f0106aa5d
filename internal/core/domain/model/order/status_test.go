package order_test

import (
	"fmt"
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Cart))
		assert.Equal(t, 2, int(order.Created))
		assert.Equal(t, 3, int(order.Accepted))
		assert.Equal(t, 4, int(order.Refused))
		assert.Equal(t, 5, int(order.Cancelled))
		assert.Equal(t, 6, int(order.Fulfilled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Cart,
			order.Created,
			order.Accepted,
			order.Refused,
			order.Cancelled,
			order.Fulfilled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out of range statuses", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(7),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Cart, "Cart"},
			{order.Created, "Created"},
			{order.Accepted, "Accepted"},
			{order.Refused, "Refused"},
			{order.Cancelled, "Cancelled"},
			{order.Fulfilled, "Fulfilled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return Unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark Refused, Cancelled and Fulfilled as terminal", func(t *testing.T) {
		assert.True(t, order.Refused.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Fulfilled.IsTerminal())
	})

	t.Run("should mark other statuses as non-terminal", func(t *testing.T) {
		assert.False(t, order.Cart.IsTerminal())
		assert.False(t, order.Created.IsTerminal())
		assert.False(t, order.Accepted.IsTerminal())
	})
}

func TestStatus_Apply(t *testing.T) {
	t.Run("should follow defined edges", func(t *testing.T) {
		testCases := []struct {
			from       order.Status
			transition order.Transition
			expected   order.Status
		}{
			{order.Cart, order.TransitionCreate, order.Created},
			{order.Created, order.TransitionAccept, order.Accepted},
			{order.Created, order.TransitionRefuse, order.Refused},
			{order.Created, order.TransitionCancel, order.Cancelled},
			{order.Accepted, order.TransitionCancel, order.Cancelled},
			{order.Accepted, order.TransitionFulfill, order.Fulfilled},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s + %s => %s", tc.from, tc.transition, tc.expected), func(t *testing.T) {
				next, err := tc.from.Apply(tc.transition)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, next)
			})
		}
	})

	t.Run("should reject undefined edges", func(t *testing.T) {
		testCases := []struct {
			from       order.Status
			transition order.Transition
		}{
			{order.Cart, order.TransitionRefuse},
			{order.Cart, order.TransitionAccept},
			{order.Cart, order.TransitionCancel},
			{order.Created, order.TransitionFulfill},
			{order.Created, order.TransitionCreate},
			{order.Accepted, order.TransitionAccept},
			{order.Accepted, order.TransitionRefuse},
			{order.Fulfilled, order.TransitionCancel},
			{order.Cancelled, order.TransitionAccept},
			{order.Refused, order.TransitionCreate},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s + %s", tc.from, tc.transition), func(t *testing.T) {
				_, err := tc.from.Apply(tc.transition)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)

				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, "order", transitionErr.Aggregate)
				assert.Equal(t, tc.from.String(), transitionErr.From)
				assert.Equal(t, string(tc.transition), transitionErr.Transition)
			})
		}
	})
}
