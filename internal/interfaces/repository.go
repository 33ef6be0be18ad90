package interfaces

import (
	"context"

	"leaf-and-fork/internal/domain"
)

// OrderRepository is the persistence side of the order store. A Put is a
// full-record replace executed atomically per key; partial patches are
// limited to the status and estimation columns, which are the only
// fields that change after creation.
type OrderRepository interface {
	Put(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)

	// UpdateStatus persists the transition from -> to only when the
	// stored status still equals from; otherwise it fails with
	// domain.ErrStatusConflict. estimating is written alongside so a
	// reader can never observe the new status with a stale flag.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status, estimating bool) error

	// SetEstimate writes the settled ETA fields and clears the
	// in-flight flag in a single statement.
	SetEstimate(ctx context.Context, id string, distanceKm float64, travelMinutes, etaMinutes int) error

	// ClearEstimating drops the in-flight flag without touching the
	// ETA fields, used when the lookup fails.
	ClearEstimating(ctx context.Context, id string) error
}

type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) error
	Get(ctx context.Context, id string) (*domain.Customer, error)
}
