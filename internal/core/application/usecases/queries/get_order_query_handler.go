package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultDeliveryPromise is the dropoff expectation used for in-flight
// orders: the timeline is estimated against "promised delivery in 45
// minutes from now".
const defaultDeliveryPromise = 45 * time.Minute

// GetOrderQueryHandler retrieves the full view of one order: its row, items,
// payment history, and the delivery timeline estimated by the timeline
// calculator.
type GetOrderQueryHandler struct {
	db         *gorm.DB
	calculator *services.OrderTimelineCalculator
}

// NewGetOrderQueryHandler creates a handler for single order queries. The
// calculator may be nil; the timeline is then omitted from the response.
func NewGetOrderQueryHandler(db *gorm.DB, calculator *services.OrderTimelineCalculator) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, calculator: calculator}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// with the requested identifier exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		ID:         aggregate.ID(),
		Status:     aggregate.Status().String(),
		Location:   aggregate.DeliveryLocation(),
		TotalCents: aggregate.TotalCents(),
	}

	for _, item := range aggregate.Items() {
		response.Items = append(response.Items, OrderItemResponse{
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	for _, p := range aggregate.Payments() {
		response.Payments = append(response.Payments, OrderPaymentResponse{
			ID:        p.ID(),
			Status:    p.Status().String(),
			LastError: p.LastError(),
		})
	}

	if h.calculator != nil && !aggregate.Status().IsTerminal() {
		timeline, calcErr := h.calculator.Calculate(aggregate, time.Now().Add(defaultDeliveryPromise))
		if calcErr != nil {
			return GetOrderQueryResponse{}, calcErr
		}
		response.Timeline = &OrderTimelineResponse{
			PreparationExpectedAt: timeline.PreparationExpectedAt,
			PickupExpectedAt:      timeline.PickupExpectedAt,
			DropoffExpectedAt:     timeline.DropoffExpectedAt,
		}
	}

	return response, nil
}

// loadOrder rehydrates the order aggregate from its rows.
func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	var orderRow struct {
		ID        uuid.UUID
		Status    int
		LocationX int8
		LocationY int8
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT id, status, location_x, location_y
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Scan(&orderRow)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	location, err := kernel.NewLocation(
		kernel.Coordinate(orderRow.LocationX),
		kernel.Coordinate(orderRow.LocationY),
	)
	if err != nil {
		return nil, err
	}

	items, err := h.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payments, err := h.loadPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(orderID, location, items, order.Status(orderRow.Status), payments)
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error) {
	var itemRows []struct {
		Name           string
		Quantity       int
		UnitPriceCents int
	}

	if err := h.db.WithContext(ctx).Raw(`
		SELECT name, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Scan(&itemRows).Error; err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemRows))
	for _, row := range itemRows {
		item, err := order.NewItem(row.Name, row.Quantity, row.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (h GetOrderQueryHandler) loadPayments(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	var paymentRows []struct {
		ID        uuid.UUID
		Status    int
		LastError *string
	}

	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, status, last_error
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.Bytes()).Scan(&paymentRows).Error; err != nil {
		return nil, err
	}

	payments := make([]*payment.Payment, 0, len(paymentRows))
	for _, row := range paymentRows {
		paymentID, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		p, err := payment.RestorePayment(paymentID, orderID, payment.Status(row.Status), row.LastError)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}
