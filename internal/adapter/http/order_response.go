package http

import (
	"time"

	"leaf-and-fork/internal/domain"
)

type OrderItemResponse struct {
	MenuItemID   int     `json:"menu_item_id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	UnitCalories int     `json:"unit_calories"`
	Quantity     int     `json:"quantity"`
	KitchenID    string  `json:"kitchen_id"`
}

type OrderResponse struct {
	ID                   string              `json:"id"`
	CustomerID           string              `json:"customer_id"`
	CustomerName         string              `json:"customer_name"`
	DeliveryAddress      string              `json:"delivery_address"`
	Items                []OrderItemResponse `json:"items"`
	Total                float64             `json:"total"`
	TotalCalories        int                 `json:"total_calories"`
	Status               string              `json:"status"`
	Progress             int                 `json:"progress"`
	EstimatedTimeMinutes int                 `json:"estimated_time_minutes"`
	DistanceKm           *float64            `json:"distance_km,omitempty"`
	TravelTimeMinutes    *int                `json:"travel_time_minutes,omitempty"`
	IsEstimating         bool                `json:"is_estimating"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			MenuItemID:   item.MenuItemID,
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			UnitCalories: item.UnitCalories,
			Quantity:     item.Quantity,
			KitchenID:    item.KitchenID,
		}
	}
	return OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		CustomerName:         o.CustomerName,
		DeliveryAddress:      o.DeliveryAddress,
		Items:                items,
		Total:                o.Total,
		TotalCalories:        o.TotalCalories,
		Status:               string(o.Status),
		Progress:             o.Status.Progress(),
		EstimatedTimeMinutes: o.EstimatedTimeMinutes,
		DistanceKm:           o.DistanceKm,
		TravelTimeMinutes:    o.TravelTimeMinutes,
		IsEstimating:         o.IsEstimating,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}
