package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEstimatedTimeMinutes is the caller-supplied estimate set at
// checkout, before the real ETA is computed during preparation.
const DefaultEstimatedTimeMinutes = 25

// Order is the aggregate root. There is exactly one authoritative record
// per id; every list, queue and pointer the UIs show is a read-only view
// over it. Items and totals are fixed at creation, the status advances
// through the lifecycle chain, and the record freezes once delivered.
type Order struct {
	ID              string
	CustomerID      string
	CustomerName    string
	DeliveryAddress string
	Items           []OrderItem
	Total           float64
	TotalCalories   int
	Status          Status

	// EstimatedTimeMinutes starts at the checkout default and is
	// overwritten once by the estimator during the preparing step.
	EstimatedTimeMinutes int
	DistanceKm           *float64
	TravelTimeMinutes    *int
	IsEstimating         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a line of an order, captured from the catalog at
// cart-build time. The engine never re-reads the catalog afterwards.
type OrderItem struct {
	MenuItemID   int
	Name         string
	UnitPrice    float64
	UnitCalories int
	Quantity     int
	KitchenID    string
}

// NewOrder builds a confirmed order with derived totals. The returned
// order has passed Validate.
func NewOrder(customerID, customerName, deliveryAddress string, items []OrderItem) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		ID:                   uuid.NewString(),
		CustomerID:           customerID,
		CustomerName:         customerName,
		DeliveryAddress:      deliveryAddress,
		Items:                items,
		Status:               StatusConfirmed,
		EstimatedTimeMinutes: DefaultEstimatedTimeMinutes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	o.CalculateTotals()

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// CalculateTotals derives Total and TotalCalories from the items. Called
// once at creation; the stored values are never recomputed afterwards.
func (o *Order) CalculateTotals() {
	total := 0.0
	calories := 0
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
		calories += item.UnitCalories * item.Quantity
	}
	o.Total = math.Round(total*100) / 100
	o.TotalCalories = calories
}

// Validate applies the creation-time invariants: at least one item, sane
// quantities, and totals consistent with the items.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrValidation)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for i, item := range o.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrValidation, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, i)
		}
		if item.UnitPrice <= 0 {
			return fmt.Errorf("%w: item %d has a non-positive price", ErrValidation, i)
		}
	}

	sum := 0.0
	calories := 0
	for _, item := range o.Items {
		sum += item.UnitPrice * float64(item.Quantity)
		calories += item.UnitCalories * item.Quantity
	}
	if math.Abs(sum-o.Total) > 0.005 {
		return fmt.Errorf("%w: total %.2f does not match item sum %.2f", ErrValidation, o.Total, sum)
	}
	if calories != o.TotalCalories {
		return fmt.Errorf("%w: total calories %d do not match item sum %d", ErrValidation, o.TotalCalories, calories)
	}

	if !o.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, o.Status)
	}
	if o.EstimatedTimeMinutes < 0 {
		return fmt.Errorf("%w: negative estimated time", ErrValidation)
	}
	return nil
}

// TransitionTo moves the order to newStatus, which must be the unique
// successor of the current status.
func (o *Order) TransitionTo(newStatus Status) error {
	next, ok := o.Status.Next()
	if !ok || next != newStatus {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrStatusConflict, o.Status, newStatus)
	}
	o.Status = newStatus
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyEstimate records the settled ETA lookup result and clears the
// in-flight flag. etaMinutes replaces the checkout default.
func (o *Order) ApplyEstimate(distanceKm float64, travelMinutes, etaMinutes int) {
	o.DistanceKm = &distanceKm
	o.TravelTimeMinutes = &travelMinutes
	o.EstimatedTimeMinutes = etaMinutes
	o.IsEstimating = false
	o.UpdatedAt = time.Now().UTC()
}
