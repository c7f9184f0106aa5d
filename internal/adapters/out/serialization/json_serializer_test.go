package serialization_test

import (
	"encoding/json"
	"testing"

	"ordering/internal/adapters/out/serialization"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrderWithPayment(t *testing.T) (*order.Order, *payment.Payment) {
	t.Helper()

	location, err := kernel.NewLocation(3, 7)
	require.NoError(t, err)
	item, err := order.NewItem("Margherita", 2, 950)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), location, []order.Item{item})
	require.NoError(t, err)
	p, err := payment.NewPayment(kernel.NewUUID(), o.ID())
	require.NoError(t, err)
	require.NoError(t, o.AddPayment(p))

	return o, p
}

func TestJSONOrderSerializer_Serialize(t *testing.T) {
	serializer := serialization.NewJSONOrderSerializer()

	t.Run("should render the order group view", func(t *testing.T) {
		o, _ := mustOrderWithPayment(t)

		payload, err := serializer.Serialize(o, "json", []string{"order"})

		require.NoError(t, err)

		var view map[string]any
		require.NoError(t, json.Unmarshal(payload, &view))
		assert.Equal(t, o.ID().String(), view["id"])
		assert.Equal(t, "Cart", view["status"])
		assert.InDelta(t, 1900, view["total_cents"], 0)
		assert.NotContains(t, view, "payments")

		items, ok := view["items"].([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
	})

	t.Run("should include payment history for the payments group", func(t *testing.T) {
		o, p := mustOrderWithPayment(t)

		payload, err := serializer.Serialize(o, "json", []string{"order", "payments"})

		require.NoError(t, err)

		var view struct {
			Payments []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"payments"`
		}
		require.NoError(t, json.Unmarshal(payload, &view))
		require.Len(t, view.Payments, 1)
		assert.Equal(t, p.ID().String(), view.Payments[0].ID)
		assert.Equal(t, "New", view.Payments[0].Status)
	})

	t.Run("should reject unsupported format", func(t *testing.T) {
		o, _ := mustOrderWithPayment(t)

		_, err := serializer.Serialize(o, "xml", []string{"order"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown groups", func(t *testing.T) {
		o, _ := mustOrderWithPayment(t)

		_, err := serializer.Serialize(o, "json", []string{"courier"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject order created without constructor", func(t *testing.T) {
		_, err := serializer.Serialize(&order.Order{}, "json", []string{"order"})

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
