package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_id, customer_name, delivery_address, total, total_calories,
	       status, estimated_minutes, distance_km, travel_time_minutes, is_estimating,
	       created_at, updated_at`

// Put replaces the whole record for order.ID: the order row is upserted
// and the item rows rewritten inside one transaction, so readers see
// either the old record or the new one, never a mix.
func (r *orderRepository) Put(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, customer_id, customer_name, delivery_address, total, total_calories,
		                    status, estimated_minutes, distance_km, travel_time_minutes, is_estimating,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			customer_name = EXCLUDED.customer_name,
			delivery_address = EXCLUDED.delivery_address,
			total = EXCLUDED.total,
			total_calories = EXCLUDED.total_calories,
			status = EXCLUDED.status,
			estimated_minutes = EXCLUDED.estimated_minutes,
			distance_km = EXCLUDED.distance_km,
			travel_time_minutes = EXCLUDED.travel_time_minutes,
			is_estimating = EXCLUDED.is_estimating,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.CustomerID, order.CustomerName, order.DeliveryAddress,
		order.Total, order.TotalCalories, order.Status, order.EstimatedTimeMinutes,
		order.DistanceKm, order.TravelTimeMinutes, order.IsEstimating,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}

	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, menu_item_id, name, unit_price, unit_calories, quantity, kitchen_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err = tx.Exec(ctx, itemQuery,
			order.ID, item.MenuItemID, item.Name, item.UnitPrice, item.UnitCalories, item.Quantity, item.KitchenID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1`
	return r.queryOrders(ctx, query, customerID)
}

// UpdateStatus is the optimistic write behind advance: the WHERE clause
// checks the expected status, and zero affected rows means someone else
// got there first (or the id is unknown).
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, estimating bool) error {
	query := `
		UPDATE orders
		SET status = $1, is_estimating = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	tag, err := r.db.Exec(ctx, query, to, estimating, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrStatusConflict, id, from)
	}
	return nil
}

func (r *orderRepository) SetEstimate(ctx context.Context, id string, distanceKm float64, travelMinutes, etaMinutes int) error {
	query := `
		UPDATE orders
		SET distance_km = $1, travel_time_minutes = $2, estimated_minutes = $3,
		    is_estimating = FALSE, updated_at = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, distanceKm, travelMinutes, etaMinutes, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to write estimate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ClearEstimating(ctx context.Context, id string) error {
	query := `UPDATE orders SET is_estimating = FALSE, updated_at = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to clear estimating flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT order_id, menu_item_id, name, unit_price, unit_calories, quantity, kitchen_id
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.UnitPrice, &item.UnitCalories, &item.Quantity, &item.KitchenID); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.DeliveryAddress,
		&order.Total, &order.TotalCalories, &order.Status, &order.EstimatedTimeMinutes,
		&order.DistanceKm, &order.TravelTimeMinutes, &order.IsEstimating,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
