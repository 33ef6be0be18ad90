package interfaces

import (
	"context"

	"leaf-and-fork/internal/domain"
)

// CheckoutCommand carries everything the payment flow hands over after
// confirmation. Items arrive fully priced from the catalog; the engine
// never queries the catalog again.
type CheckoutCommand struct {
	CustomerID      string
	CustomerName    string
	DeliveryAddress string
	Items           []domain.OrderItem
	CouponCode      string
}

// CheckoutResult pairs the stored order with the charge breakdown shown
// to the customer. Only the order is persisted; the charge is a
// presentation concern of the payment flow.
type CheckoutResult struct {
	Order       *domain.Order
	Subtotal    float64
	DeliveryFee float64
	Discount    float64
	AmountDue   float64
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error)
}

// LifecycleService advances orders through the status chain with an
// optimistic expected-status precondition.
type LifecycleService interface {
	Advance(ctx context.Context, orderID string, expected domain.Status) (*domain.Order, error)
	Shutdown(ctx context.Context) error
}

// QueueFilter narrows the operator queue. Zero values match everything.
type QueueFilter struct {
	Status domain.Status
	Query  string
}

// TrackingService computes the read projections. All three are pure
// queries over the order store, recomputed on every call.
type TrackingService interface {
	Order(ctx context.Context, id string) (*domain.Order, error)
	OperatorQueue(ctx context.Context, filter QueueFilter) ([]*domain.Order, error)
	CustomerHistory(ctx context.Context, customerID string) ([]*domain.Order, error)
	CurrentOrder(ctx context.Context, customerID string) (*domain.Order, error)
}

// Estimate is the output of one ETA lookup.
type Estimate struct {
	DistanceKm        float64
	TravelTimeMinutes int
	ETAMinutes        int
}

// ETAEstimator resolves a delivery address against an origin address.
// One call, bounded latency, no retries: it either settles or fails
// with domain.ErrEstimationFailed.
type ETAEstimator interface {
	Estimate(ctx context.Context, deliveryAddress, originAddress string) (Estimate, error)
}
