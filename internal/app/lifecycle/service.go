// Package lifecycle is the order state machine. Advance moves an order
// one step along the status chain under an optimistic expected-status
// precondition, and the step into preparing kicks off the asynchronous
// ETA computation.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"
	"leaf-and-fork/internal/metrics"

	"go.uber.org/zap"
)

type Service struct {
	store     interfaces.OrderRepository
	estimator interfaces.ETAEstimator
	logger    *zap.Logger
	metrics   *metrics.Registry

	kitchenAddress    string
	estimationTimeout time.Duration

	estimations sync.WaitGroup
}

func NewService(
	st interfaces.OrderRepository,
	estimator interfaces.ETAEstimator,
	logger *zap.Logger,
	m *metrics.Registry,
	kitchenAddress string,
	estimationTimeout time.Duration,
) *Service {
	return &Service{
		store:             st,
		estimator:         estimator,
		logger:            logger,
		metrics:           m,
		kitchenAddress:    kitchenAddress,
		estimationTimeout: estimationTimeout,
	}
}

// Advance moves orderID from expected to its unique successor. The
// status write is synchronous; when the successor is preparing, the ETA
// lookup runs in the background after the write has committed, so a
// reader can never observe preparing without the estimating flag.
func (s *Service) Advance(ctx context.Context, orderID string, expected domain.Status) (*domain.Order, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if expected.Terminal() {
		return nil, fmt.Errorf("%w: order %s is already %s", domain.ErrStatusConflict, orderID, order.Status)
	}
	next, ok := expected.Next()
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrStatusConflict, expected)
	}

	estimating := next == domain.StatusPreparing

	// The store enforces the precondition atomically; the Get above is
	// only a fast path for better error messages.
	if err := s.store.UpdateStatus(ctx, orderID, expected, next, estimating); err != nil {
		if s.metrics != nil && errors.Is(err, domain.ErrStatusConflict) {
			s.metrics.TransitionConflicts.Inc()
		}
		return nil, err
	}

	order.Status = next
	order.IsEstimating = estimating
	order.UpdatedAt = time.Now().UTC()

	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(next)).Inc()
	}
	s.logger.Info("order advanced",
		zap.String("order_id", orderID),
		zap.String("from", string(expected)),
		zap.String("to", string(next)),
	)

	if estimating {
		s.estimations.Add(1)
		go s.runEstimation(orderID, order.DeliveryAddress)
	}

	return order, nil
}

// runEstimation performs the one-shot ETA lookup and writes the settled
// result back. Failure is non-fatal: the preparing transition already
// committed, so we only clear the flag and log; delivery matters more
// than travel-time precision.
func (s *Service) runEstimation(orderID, deliveryAddress string) {
	defer s.estimations.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.estimationTimeout)
	defer cancel()

	start := time.Now()
	est, err := s.estimator.Estimate(ctx, deliveryAddress, s.kitchenAddress)
	if s.metrics != nil {
		s.metrics.EstimationLatencySec.Observe(time.Since(start).Seconds())
	}

	// The original request context is long gone; give the write-back
	// its own short deadline.
	writeCtx, writeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer writeCancel()

	if err != nil {
		if s.metrics != nil {
			s.metrics.EstimationsFailed.Inc()
		}
		s.logger.Warn("eta estimation failed, order keeps degraded estimate",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		if err := s.store.ClearEstimating(writeCtx, orderID); err != nil {
			s.logger.Error("failed to clear estimating flag", zap.String("order_id", orderID), zap.Error(err))
		}
		return
	}

	if err := s.store.SetEstimate(writeCtx, orderID, est.DistanceKm, est.TravelTimeMinutes, est.ETAMinutes); err != nil {
		s.logger.Error("failed to write estimate", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	s.logger.Info("eta settled",
		zap.String("order_id", orderID),
		zap.Float64("distance_km", est.DistanceKm),
		zap.Int("eta_minutes", est.ETAMinutes),
	)
}

// Shutdown waits for in-flight estimations to settle, up to the
// context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.estimations.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
