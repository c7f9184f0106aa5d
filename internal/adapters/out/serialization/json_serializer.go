// Package serialization renders orders into wire payloads for the change
// publisher. Serialization groups select which view of the order is exposed:
// the "order" group is the customer-visible snapshot, the "payments" group
// additionally exposes the payment history for back office subscribers.
package serialization

import (
	"encoding/json"
	"slices"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// FormatJSON is the only wire format supported by this serializer.
const FormatJSON = "json"

// Group names understood by the serializer.
const (
	GroupOrder    = "order"
	GroupPayments = "payments"
)

type locationView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type itemView struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

type paymentView struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	LastError *string `json:"last_error,omitempty"`
}

type orderView struct {
	ID               string        `json:"id"`
	Status           string        `json:"status"`
	TotalCents       int           `json:"total_cents"`
	DeliveryLocation locationView  `json:"delivery_location"`
	Items            []itemView    `json:"items"`
	Payments         []paymentView `json:"payments,omitempty"`
}

// JSONOrderSerializer implements the OrderSerializer port with JSON output.
type JSONOrderSerializer struct{}

// NewJSONOrderSerializer creates a new serializer instance.
func NewJSONOrderSerializer() JSONOrderSerializer {
	return JSONOrderSerializer{}
}

// Serialize renders the order restricted to the requested groups. The format
// must be "json" and at least one known group must be requested.
func (JSONOrderSerializer) Serialize(aggregate *order.Order, format string, groups []string) ([]byte, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	if format != FormatJSON {
		return nil, errs.NewValueIsInvalidError("unsupported serialization format: " + format)
	}

	if !slices.Contains(groups, GroupOrder) && !slices.Contains(groups, GroupPayments) {
		return nil, errs.NewValueIsInvalidError("no known serialization group requested")
	}

	view := orderView{
		ID:         aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		TotalCents: aggregate.TotalCents(),
		DeliveryLocation: locationView{
			X: int(aggregate.DeliveryLocation().X()),
			Y: int(aggregate.DeliveryLocation().Y()),
		},
		Items: make([]itemView, 0, len(aggregate.Items())),
	}

	for _, item := range aggregate.Items() {
		view.Items = append(view.Items, itemView{
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	if slices.Contains(groups, GroupPayments) {
		for _, p := range aggregate.Payments() {
			view.Payments = append(view.Payments, paymentView{
				ID:        p.ID().String(),
				Status:    p.Status().String(),
				LastError: p.LastError(),
			})
		}
	}

	return json.Marshal(view)
}
