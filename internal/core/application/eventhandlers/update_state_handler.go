package eventhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

var (
	// ErrUoWFactoryIsRequired is returned when constructing a handler without
	// a unit of work factory.
	ErrUoWFactoryIsRequired = errors.New("unit of work factory is required")
	// ErrPublisherIsRequired is returned when constructing a handler without
	// a change publisher.
	ErrPublisherIsRequired = errors.New("change publisher is required")
	// ErrSerializerIsRequired is returned when constructing a handler without
	// an order serializer.
	ErrSerializerIsRequired = errors.New("order serializer is required")
	// ErrOrderProcessorIsRequired is returned when constructing a handler
	// without an order processor.
	ErrOrderProcessorIsRequired = errors.New("order processor is required")
)

const (
	serializationFormat = "json"
	orderViewGroup      = "order"
)

// UpdateStateHandler is the order lifecycle reactor. For each domain event it
// drives the Order state machine and, where the event demands it, the Payment
// state machine of the payments attached to the order.
//
// Handling falls into two paths:
//   - Checkout events (checkout:succeeded, checkout:failed) mutate the
//     attempted payment. A successful checkout yields an order:created
//     follow-up event; a failed one records the reason and asks the order
//     processor to open a fresh payment attempt. Neither path publishes.
//   - State change events resolve the order transition registered for their
//     message name, apply it, persist, and publish the order snapshot to the
//     order's state change channel exactly once. order:fulfilled then
//     completes the event's payment; order:cancelled cancels every payment
//     still active on the order.
//
// Events with no registered reaction are ignored: counted, logged, and
// dropped without error so that unknown event kinds on the bus do not poison
// consumption.
//
// Cascades are returned as follow-up events rather than handled recursively;
// the Dispatcher drains them under the same per-order lock.
type UpdateStateHandler struct {
	uowFactory     OrderUoWFactory
	publisher      ports.ChangePublisher
	serializer     ports.OrderSerializer
	orderProcessor ports.OrderProcessor
	transitions    map[string]order.Transition
	logger         *slog.Logger
}

// NewUpdateStateHandler creates the reactor with all collaborators wired in.
// The event-to-transition table is built here once and never mutated.
func NewUpdateStateHandler(
	uowFactory OrderUoWFactory,
	publisher ports.ChangePublisher,
	serializer ports.OrderSerializer,
	orderProcessor ports.OrderProcessor,
	logger *slog.Logger,
) (*UpdateStateHandler, error) {
	if uowFactory == nil {
		return nil, ErrUoWFactoryIsRequired
	}
	if publisher == nil {
		return nil, ErrPublisherIsRequired
	}
	if serializer == nil {
		return nil, ErrSerializerIsRequired
	}
	if orderProcessor == nil {
		return nil, ErrOrderProcessorIsRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UpdateStateHandler{
		uowFactory:     uowFactory,
		publisher:      publisher,
		serializer:     serializer,
		orderProcessor: orderProcessor,
		transitions: map[string]order.Transition{
			events.MessageOrderCreated:   order.TransitionCreate,
			events.MessageOrderAccepted:  order.TransitionAccept,
			events.MessageOrderRefused:   order.TransitionRefuse,
			events.MessageOrderCancelled: order.TransitionCancel,
			events.MessageOrderFulfilled: order.TransitionFulfill,
		},
		logger: logger.With("component", "update_state_handler"),
	}, nil
}

// Handle processes a single domain event and returns the follow-up events it
// produced, if any. Callers must drain follow-ups under the same per-order
// serialization key as the triggering event.
func (h *UpdateStateHandler) Handle(ctx context.Context, event events.Event) ([]events.Event, error) {
	if event == nil || event.Order() == nil {
		return nil, errs.NewValueIsRequiredError("event")
	}

	metrics.EventsHandledTotal.WithLabelValues(event.MessageName()).Inc()

	switch e := event.(type) {
	case *events.CheckoutSucceeded:
		return h.handleCheckoutSucceeded(ctx, e)
	case *events.CheckoutFailed:
		return nil, h.handleCheckoutFailed(ctx, e)
	default:
		return h.handleStateChange(ctx, event)
	}
}

// handleCheckoutSucceeded authorizes the attempted payment and cascades an
// order:created event for the order. The cascade never produces another
// checkout event, so follow-up handling terminates after one extra level.
func (h *UpdateStateHandler) handleCheckoutSucceeded(
	ctx context.Context, event *events.CheckoutSucceeded,
) ([]events.Event, error) {
	p := event.Payment()

	snapshot := p.Memento()
	if err := p.Authorize(); err != nil {
		return nil, err
	}

	if err := h.persist(ctx, event.Order()); err != nil {
		p.RestoreMemento(snapshot)
		return nil, err
	}

	followUp, err := events.NewOrderCreated(event.Order())
	if err != nil {
		return nil, err
	}

	return []events.Event{followUp}, nil
}

// handleCheckoutFailed records the failure on the payment, fails it, and asks
// the order processor to open a fresh attempt. No publish happens on this
// path since the order's state did not change.
func (h *UpdateStateHandler) handleCheckoutFailed(ctx context.Context, event *events.CheckoutFailed) error {
	p := event.Payment()

	snapshot := p.Memento()
	p.SetLastError(event.Reason())
	if err := p.Fail(); err != nil {
		p.RestoreMemento(snapshot)
		return err
	}

	if err := h.orderProcessor.Process(ctx, event.Order()); err != nil {
		p.RestoreMemento(snapshot)
		return errs.NewCollaboratorError("order processor", err)
	}

	if err := h.persist(ctx, event.Order()); err != nil {
		p.RestoreMemento(snapshot)
		return err
	}

	h.logger.InfoContext(ctx, "checkout failed",
		"order_id", event.Order().ID().String(),
		"payment_id", p.ID().String(),
		"reason", event.Reason())

	return nil
}

// handleStateChange applies the order transition registered for the event's
// message name, persists the order, publishes the new state exactly once,
// and then applies the event's secondary payment effects.
func (h *UpdateStateHandler) handleStateChange(ctx context.Context, event events.Event) ([]events.Event, error) {
	transition, ok := h.transitions[event.MessageName()]
	if !ok {
		// Unknown event kinds are ignored on purpose so that new producers
		// can roll out ahead of this consumer. The counter keeps the drop
		// visible.
		metrics.EventsUnrecognizedTotal.Inc()
		h.logger.WarnContext(ctx, "ignoring unrecognized event", "event", event.MessageName())
		return nil, nil
	}

	o := event.Order()

	snapshot := o.Memento()
	if err := o.ApplyTransition(transition); err != nil {
		return nil, err
	}

	if err := h.persist(ctx, o); err != nil {
		o.RestoreMemento(snapshot)
		return nil, err
	}

	metrics.TransitionsAppliedTotal.WithLabelValues(string(transition)).Inc()

	if err := h.publish(ctx, o); err != nil {
		return nil, err
	}

	return nil, h.applySecondaryEffects(ctx, event)
}

// applySecondaryEffects drives the payment state machine for events that
// settle payments alongside the order transition.
func (h *UpdateStateHandler) applySecondaryEffects(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case *events.OrderFulfilled:
		return h.completePayment(ctx, e)
	case *events.OrderCancelled:
		return h.cancelPayments(ctx, e)
	default:
		return nil
	}
}

// completePayment settles the payment carried by an order:fulfilled event.
func (h *UpdateStateHandler) completePayment(ctx context.Context, event *events.OrderFulfilled) error {
	p := event.Payment()

	snapshot := p.Memento()
	if err := p.Complete(); err != nil {
		return err
	}

	if err := h.persist(ctx, event.Order()); err != nil {
		p.RestoreMemento(snapshot)
		return err
	}

	return nil
}

// cancelPayments cancels every payment still active on a cancelled order.
// Payments already in a terminal state are immutable history and skipped.
func (h *UpdateStateHandler) cancelPayments(ctx context.Context, event *events.OrderCancelled) error {
	o := event.Order()

	var snapshots []func()
	rollback := func() {
		for _, restore := range snapshots {
			restore()
		}
	}

	cancelled := 0
	for _, p := range o.Payments() {
		if p.Status().IsTerminal() {
			continue
		}

		snapshot := p.Memento()
		snapshots = append(snapshots, func() { p.RestoreMemento(snapshot) })

		if err := p.Cancel(); err != nil {
			rollback()
			return err
		}
		cancelled++
	}

	if cancelled == 0 {
		return nil
	}

	if err := h.persist(ctx, o); err != nil {
		rollback()
		return err
	}

	return nil
}

// persist writes the order aggregate, payments included, in one transaction.
func (h *UpdateStateHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// publish broadcasts the order's current state to its state change channel.
// Called after the transition is durably persisted, once per accepted
// transition.
func (h *UpdateStateHandler) publish(ctx context.Context, o *order.Order) error {
	payload, err := h.serializer.Serialize(o, serializationFormat, []string{orderViewGroup})
	if err != nil {
		return errs.NewCollaboratorError("serializer", err)
	}

	channel := StateChangedChannel(o.ID().String())
	if err = h.publisher.Publish(ctx, channel, payload); err != nil {
		return errs.NewCollaboratorError("change publisher", err)
	}

	return nil
}

// StateChangedChannel returns the pub/sub channel carrying state changes of
// the given order.
func StateChangedChannel(orderID string) string {
	return fmt.Sprintf("order:%s:state_changed", orderID)
}
