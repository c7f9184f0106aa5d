// Package kafka consumes domain events from the order events topic and
// feeds them into the lifecycle dispatcher. The producer partitions the
// topic by order id, so one reader processes each order's events in
// production order; the dispatcher's per-order lock covers everything else.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/eventhandlers"
	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrDispatcherIsRequired is returned when constructing a consumer
	// without a dispatcher.
	ErrDispatcherIsRequired = errors.New("dispatcher is required")
	// ErrUoWFactoryIsRequired is returned when constructing a consumer
	// without a unit of work factory.
	ErrUoWFactoryIsRequired = errors.New("unit of work factory is required")
)

// envelope is the wire format of one domain event on the order events topic.
type envelope struct {
	Event     string  `json:"event"`
	OrderID   string  `json:"order_id"`
	PaymentID *string `json:"payment_id,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// messageReader is the subset of kafka.Reader the consumer drives. It exists
// so the consume loop can be exercised without a broker.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads event envelopes, rehydrates the order aggregate and runs
// the event through the dispatcher. Offsets are committed only after the
// dispatcher accepted the event, and a processing failure stops consumption
// without committing anything further, so on restart the group resumes at
// the failed event and redelivers it. Skipping ahead instead would commit a
// later offset and drop the failed event for good.
type Consumer struct {
	reader     messageReader
	dispatcher *eventhandlers.Dispatcher
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

// NewConsumer creates a consumer for the given brokers, consumer group and
// topic.
func NewConsumer(
	brokers []string,
	group string,
	topic string,
	dispatcher *eventhandlers.Dispatcher,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) (*Consumer, error) {
	if dispatcher == nil {
		return nil, ErrDispatcherIsRequired
	}
	if uowFactory == nil {
		return nil, ErrUoWFactoryIsRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})

	return &Consumer{
		reader:     reader,
		dispatcher: dispatcher,
		uowFactory: uowFactory,
		logger:     logger.With("component", "kafka_consumer"),
	}, nil
}

// Start consumes messages until the context is cancelled or an event fails
// to process. The failed event's offset stays uncommitted.
func (c *Consumer) Start(ctx context.Context) error {
	defer c.reader.Close()

	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}

		if err = c.handleMessage(ctx, message); err != nil {
			// Stop before committing anything past the failed event.
			// Committing a later offset would skip it permanently and leave
			// the order's durable state behind the event stream.
			c.logger.ErrorContext(ctx, "failed to process event",
				"error", err, "offset", message.Offset)
			return fmt.Errorf("process event at offset %d: %w", message.Offset, err)
		}

		if err = c.reader.CommitMessages(ctx, message); err != nil {
			c.logger.ErrorContext(ctx, "failed to commit offset",
				"error", err, "offset", message.Offset)
		}
	}
}

// handleMessage decodes one envelope, rehydrates the order and dispatches
// the event.
func (c *Consumer) handleMessage(ctx context.Context, message kafka.Message) error {
	var env envelope
	if err := json.Unmarshal(message.Value, &env); err != nil {
		return fmt.Errorf("malformed event envelope: %w", err)
	}

	orderID, err := kernel.UUIDFromString(env.OrderID)
	if err != nil {
		return fmt.Errorf("malformed order id: %w", err)
	}

	aggregate, err := c.uowFactory.Create().OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	event, err := c.buildEvent(env, aggregate)
	if err != nil {
		return err
	}
	if event == nil {
		// Unknown event names are skipped so they do not block the
		// partition; the reactor applies the same permissiveness to
		// recognized-but-unmapped events.
		c.logger.WarnContext(ctx, "skipping unknown event name", "event", env.Event)
		return nil
	}

	return c.dispatcher.Dispatch(ctx, event)
}

// buildEvent constructs the typed event for the envelope. Checkout envelopes
// must name the payment they concern; order:fulfilled settles the order's
// active payment.
func (c *Consumer) buildEvent(env envelope, aggregate *order.Order) (events.Event, error) {
	switch env.Event {
	case events.MessageCheckoutSucceeded:
		p, err := c.resolvePayment(env, aggregate)
		if err != nil {
			return nil, err
		}
		return events.NewCheckoutSucceeded(aggregate, p)

	case events.MessageCheckoutFailed:
		p, err := c.resolvePayment(env, aggregate)
		if err != nil {
			return nil, err
		}
		reason := "checkout failed"
		if env.Reason != nil {
			reason = *env.Reason
		}
		return events.NewCheckoutFailed(aggregate, p, reason)

	case events.MessageOrderCreated:
		return events.NewOrderCreated(aggregate)

	case events.MessageOrderAccepted:
		return events.NewOrderAccepted(aggregate)

	case events.MessageOrderRefused:
		return events.NewOrderRefused(aggregate)

	case events.MessageOrderCancelled:
		return events.NewOrderCancelled(aggregate)

	case events.MessageOrderFulfilled:
		active, err := aggregate.ActivePayment()
		if err != nil {
			return nil, err
		}
		return events.NewOrderFulfilled(aggregate, active)

	default:
		return nil, nil
	}
}

// resolvePayment finds the payment an envelope refers to, falling back to
// the order's active payment when no payment id is given.
func (c *Consumer) resolvePayment(env envelope, aggregate *order.Order) (*payment.Payment, error) {
	if env.PaymentID == nil {
		return aggregate.ActivePayment()
	}

	paymentID, err := kernel.UUIDFromString(*env.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("malformed payment id: %w", err)
	}

	return aggregate.PaymentByID(paymentID)
}
