// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders are stored across three tables: the order row,
// its item rows, and its payment rows, loaded and saved as one aggregate.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Location LocationDTO  `gorm:"embedded;embeddedPrefix:location_"`
	Status   int          `gorm:"index"`
	Items    []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []PaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded delivery location coordinates within
// the order table.
type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:smallint"`
	Y kernel.Coordinate `gorm:"type:smallint"`
}

// ItemDTO represents one ordered line. Items are immutable; they are written
// once when the order is added and never updated.
type ItemDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Name           string
	Quantity       int
	UnitPriceCents int
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO represents one payment attempt of an order. CreatedAt preserves
// the attempt order when the aggregate is reloaded.
type PaymentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	LastError *string
	CreatedAt time.Time
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order domain aggregate to its database
// representation, payments included.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID: aggregate.ID().Bytes(),
		Location: LocationDTO{
			X: aggregate.DeliveryLocation().X(),
			Y: aggregate.DeliveryLocation().Y(),
		},
		Status: int(aggregate.Status()),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:        dto.ID,
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	for _, p := range aggregate.Payments() {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:        p.ID().Bytes(),
			OrderID:   dto.ID,
			Status:    int(p.Status()),
			LastError: p.LastError(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payments := make([]*payment.Payment, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		paymentID, paymentErr := kernel.UUIDFromBytes(paymentDTO.ID[:])
		if paymentErr != nil {
			return nil, paymentErr
		}

		p, paymentErr := payment.RestorePayment(
			paymentID, id, payment.Status(paymentDTO.Status), paymentDTO.LastError)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, p)
	}

	return order.RestoreOrder(id, location, items, order.Status(dto.Status), payments)
}
