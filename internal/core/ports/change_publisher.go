package ports

import "context"

// ChangePublisher broadcasts order state changes to interested subscribers
// (storefront UI, store dashboards). One message is published per applied
// state change, on a per-order channel.
type ChangePublisher interface {
	// Publish sends the payload to the given channel. It must be called only
	// after the state change is durably persisted.
	Publish(ctx context.Context, channel string, payload []byte) error
}
