package interfaces

import (
	"context"
	"time"
)

// ChangeNotification says that the record for OrderID changed. It
// deliberately carries no payload: subscribers re-read the store, which
// stays the single source of truth.
type ChangeNotification struct {
	OrderID   string    `json:"order_id"`
	ChangedAt time.Time `json:"changed_at"`
}

// ChangePublisher fires a best-effort notification to whoever is
// listening right now. Delivery is not guaranteed; a subscriber that
// registers later, or whose context is down, simply misses it.
type ChangePublisher interface {
	PublishChange(ctx context.Context, n ChangeNotification) error
}

// ChangeHandler is invoked for every notification that does arrive.
// Handler errors are swallowed: a missed or failed notification is
// recovered by the next poll cycle, never retried here.
type ChangeHandler func(ctx context.Context, n ChangeNotification)

// ChangeSubscriber registers a handler and returns a cancellation
// handle. Subscribers must pair this with a polling fallback; the
// notification path is a latency optimization only.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, handler ChangeHandler) (cancel func(), err error)
}
