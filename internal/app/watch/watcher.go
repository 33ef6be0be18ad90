// Package watch keeps one context in sync with writes made by the
// other. It layers two mechanisms: the change-notification subscription
// for latency, and a fixed-interval poll-and-diff for correctness. The
// poll loop alone is sufficient; a subscriber that never receives a
// single notification still observes every change within one interval.
package watch

import (
	"context"
	"sync"
	"time"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"
	"leaf-and-fork/internal/metrics"

	"go.uber.org/zap"
)

// OrderLister is the slice of the order store the watcher reads.
type OrderLister interface {
	List(ctx context.Context) ([]*domain.Order, error)
}

// Update describes one observed change. Previous is empty for orders
// seen for the first time.
type Update struct {
	Order    *domain.Order
	Previous domain.Status
	Current  domain.Status
}

type Handler func(Update)

type Watcher struct {
	lister     OrderLister
	subscriber interfaces.ChangeSubscriber
	interval   time.Duration
	handler    Handler
	logger     *zap.Logger
	metrics    *metrics.Registry

	mu       sync.Mutex
	lastSeen map[string]domain.Status
}

func New(
	lister OrderLister,
	subscriber interfaces.ChangeSubscriber,
	interval time.Duration,
	handler Handler,
	logger *zap.Logger,
	m *metrics.Registry,
) *Watcher {
	return &Watcher{
		lister:     lister,
		subscriber: subscriber,
		interval:   interval,
		handler:    handler,
		logger:     logger,
		metrics:    m,
		lastSeen:   make(map[string]domain.Status),
	}
}

// Run blocks until ctx is done. The subscription is attempted once; if
// it fails the watcher degrades to polling only, which preserves
// correctness at the cost of latency.
func (w *Watcher) Run(ctx context.Context) error {
	if w.subscriber != nil {
		cancel, err := w.subscriber.Subscribe(ctx, func(ctx context.Context, n interfaces.ChangeNotification) {
			// Any notification just triggers an early reconcile; the
			// store stays the source of truth for what changed.
			w.reconcile(ctx)
		})
		if err != nil {
			w.logger.Warn("change subscription unavailable, polling only", zap.Error(err))
		} else {
			defer cancel()
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.reconcile(ctx)
		}
	}
}

func (w *Watcher) reconcile(ctx context.Context) {
	orders, err := w.lister.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("poll failed, retrying next interval", zap.Error(err))
		}
		return
	}

	if w.metrics != nil {
		w.metrics.PollCycles.Inc()
	}

	var updates []Update

	w.mu.Lock()
	for _, o := range orders {
		prev, known := w.lastSeen[o.ID]
		if known && prev == o.Status {
			continue
		}
		w.lastSeen[o.ID] = o.Status
		updates = append(updates, Update{Order: o, Previous: prev, Current: o.Status})
	}
	w.mu.Unlock()

	for _, u := range updates {
		w.handler(u)
	}
}
