package http

import (
	"encoding/json"
	"net/http"
	"time"

	"leaf-and-fork/internal/app/catalog"
	"leaf-and-fork/internal/app/session"
	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerHandler serves the customer context: sessions, menu, checkout
// and the read-only tracking views. It never advances an order.
type CustomerHandler struct {
	checkout  interfaces.CheckoutService
	tracking  interfaces.TrackingService
	sessions  *session.Manager
	catalog   *catalog.Catalog
	customers interfaces.CustomerRepository
	logger    *zap.Logger
}

func NewCustomerHandler(
	checkout interfaces.CheckoutService,
	tracking interfaces.TrackingService,
	sessions *session.Manager,
	cat *catalog.Catalog,
	customers interfaces.CustomerRepository,
	logger *zap.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		checkout:  checkout,
		tracking:  tracking,
		sessions:  sessions,
		catalog:   cat,
		customers: customers,
		logger:    logger,
	}
}

type LoginRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type SessionResponse struct {
	SessionID  string `json:"session_id"`
	CustomerID string `json:"customer_id"`
}

func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Zip:       req.Zip,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sess, err := h.sessions.Login(customer)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.customers.Upsert(r.Context(), &customer); err != nil {
		h.sessions.Logout(sess.ID)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponse{
		SessionID:  sess.ID,
		CustomerID: customer.ID,
	})
}

func (h *CustomerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type AddCartItemRequest struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

func (h *CustomerHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.sessions.AddItem(r.PathValue("id"), req.MenuItemID, req.Quantity); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Items())
}

type PlaceOrderRequest struct {
	SessionID  string `json:"session_id"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type PlaceOrderResponse struct {
	Order       OrderResponse `json:"order"`
	Subtotal    float64       `json:"subtotal"`
	DeliveryFee float64       `json:"delivery_fee"`
	Discount    float64       `json:"discount"`
	AmountDue   float64       `json:"amount_due"`
}

// PlaceOrder is the checkout entry point, called once per order after
// the (out-of-scope) payment flow confirms.
func (h *CustomerHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	cmd := interfaces.CheckoutCommand{
		CustomerID:      sess.Customer.ID,
		CustomerName:    sess.Customer.Name,
		DeliveryAddress: sess.Customer.Address,
		Items:           sess.Cart,
		CouponCode:      req.CouponCode,
	}

	result, err := h.checkout.PlaceOrder(r.Context(), cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	h.sessions.ClearCart(sess.ID)

	respondJSON(w, http.StatusCreated, PlaceOrderResponse{
		Order:       toOrderResponse(result.Order),
		Subtotal:    result.Subtotal,
		DeliveryFee: result.DeliveryFee,
		Discount:    result.Discount,
		AmountDue:   result.AmountDue,
	})
}

func (h *CustomerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "customer_id is required"})
		return
	}

	orders, err := h.tracking.CustomerHistory(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *CustomerHandler) GetCurrentOrder(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "customer_id is required"})
		return
	}

	order, err := h.tracking.CurrentOrder(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *CustomerHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.tracking.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.customers.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.City = req.City
	existing.Zip = req.Zip
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if err := h.customers.Upsert(r.Context(), existing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, existing)
}
