package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leaf-and-fork/internal/app/catalog"
	"leaf-and-fork/internal/app/session"
	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutMock struct {
	mock.Mock
}

func (m *checkoutMock) PlaceOrder(ctx context.Context, cmd interfaces.CheckoutCommand) (*interfaces.CheckoutResult, error) {
	args := m.Called(ctx, cmd)
	result, _ := args.Get(0).(*interfaces.CheckoutResult)
	return result, args.Error(1)
}

type customerRepoMock struct {
	mock.Mock
}

func (m *customerRepoMock) Upsert(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *customerRepoMock) Get(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	customer, _ := args.Get(0).(*domain.Customer)
	return customer, args.Error(1)
}

type customerFixture struct {
	mux       *http.ServeMux
	checkout  *checkoutMock
	tracking  *trackingMock
	customers *customerRepoMock
	sessions  *session.Manager
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		checkout:  new(checkoutMock),
		tracking:  new(trackingMock),
		customers: new(customerRepoMock),
		sessions:  session.NewManager(catalog.Default()),
	}
	h := NewCustomerHandler(f.checkout, f.tracking, f.sessions, catalog.Default(), f.customers, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", h.Login)
	mux.HandleFunc("DELETE /sessions/{id}", h.Logout)
	mux.HandleFunc("POST /sessions/{id}/cart", h.AddCartItem)
	mux.HandleFunc("GET /menu", h.GetMenu)
	mux.HandleFunc("POST /orders", h.PlaceOrder)
	mux.HandleFunc("GET /orders", h.GetHistory)
	mux.HandleFunc("GET /orders/current", h.GetCurrentOrder)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)
	f.mux = mux
	return f
}

func (f *customerFixture) login(t *testing.T) SessionResponse {
	t.Helper()
	f.customers.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/sessions",
		strings.NewReader(`{"name":"Priya","email":"priya@example.com","address":"42 Garden Lane"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLoginCreatesSessionAndPersistsCustomer(t *testing.T) {
	f := newCustomerFixture()

	resp := f.login(t)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.CustomerID)
	f.customers.AssertExpectations(t)
}

func TestLoginRollsBackSessionWhenPersistFails(t *testing.T) {
	f := newCustomerFixture()
	f.customers.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	req := httptest.NewRequest(http.MethodPost, "/sessions",
		strings.NewReader(`{"name":"Priya","email":"priya@example.com"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoginRejectsInvalidCustomer(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodPost, "/sessions",
		strings.NewReader(`{"name":"Priya","email":"no-at-sign"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPlaceOrderUsesSessionCartAndClearsIt(t *testing.T) {
	f := newCustomerFixture()
	sess := f.login(t)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sess.SessionID+"/cart",
		strings.NewReader(`{"menu_item_id":1,"quantity":2}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	f.checkout.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(cmd interfaces.CheckoutCommand) bool {
		return cmd.CustomerID == sess.CustomerID &&
			cmd.CouponCode == "HEALTHY10" &&
			len(cmd.Items) == 1 && cmd.Items[0].Quantity == 2
	})).Return(&interfaces.CheckoutResult{
		Order:       &domain.Order{ID: "order-1", Status: domain.StatusConfirmed, Total: 25.98},
		Subtotal:    25.98,
		DeliveryFee: 2.99,
		Discount:    2.60,
		AmountDue:   26.37,
	}, nil).Once()

	req = httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"session_id":"`+sess.SessionID+`","coupon_code":"HEALTHY10"}`))
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp PlaceOrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "order-1", resp.Order.ID)
	assert.Equal(t, 26.37, resp.AmountDue)

	got, err := f.sessions.Get(sess.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got.Cart)
	f.checkout.AssertExpectations(t)
}

func TestPlaceOrderUnknownSession(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"session_id":"no-such-session"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	f.checkout.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestGetOrderByID(t *testing.T) {
	f := newCustomerFixture()
	f.tracking.On("Order", mock.Anything, "order-1").
		Return(&domain.Order{ID: "order-1", Status: domain.StatusReady}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, 60, resp.Progress)
}

func TestGetCurrentOrderRequiresCustomerID(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodGet, "/orders/current", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCurrentOrderWithoutOrders(t *testing.T) {
	f := newCustomerFixture()
	f.tracking.On("CurrentOrder", mock.Anything, "cust-1").
		Return(nil, domain.ErrOrderNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/orders/current?customer_id=cust-1", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMenu(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []domain.MenuItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	assert.Len(t, items, 6)
}
