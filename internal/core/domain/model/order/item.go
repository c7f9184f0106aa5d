package order

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

const maxItemQuantity = 99

// Item is an immutable line of an order: a named product, a quantity, and a
// unit price in cents.
type Item struct { //nolint:recvcheck //using for validation
	name           string
	quantity       int
	unitPriceCents int

	guard guard.ConstructorGuard
}

// NewItem creates an order line. Name must be non-empty, quantity within
// [1..99], and the unit price non-negative.
func NewItem(name string, quantity int, unitPriceCents int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the unit price in cents.
func (i Item) UnitPriceCents() int {
	return i.unitPriceCents
}

// TotalCents returns quantity times unit price.
func (i Item) TotalCents() int {
	return i.quantity * i.unitPriceCents
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPriceCents(unitPriceCents int) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidError("unit price must not be negative")
	}
	i.unitPriceCents = unitPriceCents
	return nil
}
