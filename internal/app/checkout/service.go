// Package checkout creates orders on the customer side. It runs after
// the payment flow confirms, writes exactly one confirmed snapshot into
// the order store, and never touches the order again.
package checkout

import (
	"context"
	"math"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"
	"leaf-and-fork/internal/metrics"

	"go.uber.org/zap"
)

// DeliveryFee is charged flat per order. It is part of the amount due,
// not of the order total, which stays equal to the item sum.
const DeliveryFee = 2.99

type Service struct {
	store   interfaces.OrderRepository
	logger  *zap.Logger
	metrics *metrics.Registry
}

// NewService expects the notifying order store, so that the checkout
// write raises a change notification for the operator context.
func NewService(st interfaces.OrderRepository, logger *zap.Logger, m *metrics.Registry) *Service {
	return &Service{
		store:   st,
		logger:  logger,
		metrics: m,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, cmd interfaces.CheckoutCommand) (*interfaces.CheckoutResult, error) {
	order, err := domain.NewOrder(cmd.CustomerID, cmd.CustomerName, cmd.DeliveryAddress, cmd.Items)
	if err != nil {
		s.logger.Warn("order rejected at checkout", zap.Error(err))
		return nil, err
	}

	discount := 0.0
	if cmd.CouponCode != "" {
		coupon, err := domain.LookupCoupon(cmd.CouponCode)
		if err != nil {
			return nil, err
		}
		discount = coupon.DiscountFor(order.Total)
	}

	if err := s.store.Put(ctx, order); err != nil {
		s.logger.Error("failed to persist order", zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Float64("total", order.Total),
	)

	return &interfaces.CheckoutResult{
		Order:       order,
		Subtotal:    order.Total,
		DeliveryFee: DeliveryFee,
		Discount:    discount,
		AmountDue:   math.Round((order.Total+DeliveryFee-discount)*100) / 100,
	}, nil
}
