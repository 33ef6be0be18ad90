// Package tracking computes the read projections: operator queue,
// customer history and the current-order pointer. All three are
// recomputed from the order store on every call; none of them is ever
// writable, so they cannot drift from the authoritative record.
package tracking

import (
	"context"
	"sort"
	"strings"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"go.uber.org/zap"
)

type Service struct {
	store  interfaces.OrderRepository
	logger *zap.Logger
}

func NewService(st interfaces.OrderRepository, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Order reads one record by id.
func (s *Service) Order(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.Get(ctx, id)
}

// OperatorQueue lists undelivered orders, oldest first, optionally
// narrowed by status and a free-text match over id and customer name.
func (s *Service) OperatorQueue(ctx context.Context, filter interfaces.QueueFilter) ([]*domain.Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	queue := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.Terminal() {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.ID), query) &&
			!strings.Contains(strings.ToLower(o.CustomerName), query) {
			continue
		}
		queue = append(queue, o)
	}

	sort.Slice(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue, nil
}

// CustomerHistory lists a customer's orders, most recent first.
func (s *Service) CustomerHistory(ctx context.Context, customerID string) ([]*domain.Order, error) {
	orders, err := s.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// CurrentOrder resolves the "track this order" pointer: the customer's
// most recently created order.
func (s *Service) CurrentOrder(ctx context.Context, customerID string) (*domain.Order, error) {
	history, err := s.CustomerHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return history[0], nil
}
