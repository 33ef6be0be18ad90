// Package store is the order store: the single authoritative record per
// order id, shared by both execution contexts. It couples every write to
// a change notification so that no write is silent, while keeping the
// notification strictly best-effort: a failed publish is logged, never
// propagated, because the polling fallback carries correctness.
package store

import (
	"context"
	"time"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"go.uber.org/zap"
)

type Store struct {
	repo      interfaces.OrderRepository
	publisher interfaces.ChangePublisher
	logger    *zap.Logger
}

func New(repo interfaces.OrderRepository, publisher interfaces.ChangePublisher, logger *zap.Logger) *Store {
	return &Store{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Put validates and then inserts or overwrites the full record for
// order.ID. Malformed orders are rejected before anything is persisted.
func (s *Store) Put(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if err := s.repo.Put(ctx, order); err != nil {
		return err
	}
	s.notify(ctx, order.ID)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Store) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpdateStatus persists an optimistic transition; see
// interfaces.OrderRepository for the precondition semantics.
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to domain.Status, estimating bool) error {
	if err := s.repo.UpdateStatus(ctx, id, from, to, estimating); err != nil {
		return err
	}
	s.notify(ctx, id)
	return nil
}

func (s *Store) SetEstimate(ctx context.Context, id string, distanceKm float64, travelMinutes, etaMinutes int) error {
	if err := s.repo.SetEstimate(ctx, id, distanceKm, travelMinutes, etaMinutes); err != nil {
		return err
	}
	s.notify(ctx, id)
	return nil
}

func (s *Store) ClearEstimating(ctx context.Context, id string) error {
	if err := s.repo.ClearEstimating(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, id)
	return nil
}

func (s *Store) notify(ctx context.Context, orderID string) {
	n := interfaces.ChangeNotification{
		OrderID:   orderID,
		ChangedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishChange(ctx, n); err != nil {
		s.logger.Warn("change notification not delivered",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
