package checkout

import (
	"context"
	"testing"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"
	"leaf-and-fork/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeMock struct {
	mock.Mock
}

func (m *storeMock) Put(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *storeMock) Get(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *storeMock) List(ctx context.Context) ([]*domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *storeMock) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *storeMock) UpdateStatus(ctx context.Context, id string, from, to domain.Status, estimating bool) error {
	return m.Called(ctx, id, from, to, estimating).Error(0)
}

func (m *storeMock) SetEstimate(ctx context.Context, id string, distanceKm float64, travelMinutes, etaMinutes int) error {
	return m.Called(ctx, id, distanceKm, travelMinutes, etaMinutes).Error(0)
}

func (m *storeMock) ClearEstimating(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func testCommand() interfaces.CheckoutCommand {
	return interfaces.CheckoutCommand{
		CustomerID:      "cust-1",
		CustomerName:    "Priya",
		DeliveryAddress: "42 Garden Lane",
		Items: []domain.OrderItem{
			{MenuItemID: 1, Name: "Quinoa Power Bowl", UnitPrice: 12.99, UnitCalories: 420, Quantity: 2, KitchenID: "Green Bowl Kitchen"},
			{MenuItemID: 3, Name: "Green Goddess Smoothie", UnitPrice: 8.99, UnitCalories: 280, Quantity: 1, KitchenID: "Smoothie Station"},
		},
	}
}

func TestPlaceOrderPersistsConfirmedOrder(t *testing.T) {
	st := new(storeMock)
	st.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := NewService(st, zap.NewNop(), metrics.NewRegistry())

	result, err := svc.PlaceOrder(context.Background(), testCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, result.Order.Status)
	assert.Equal(t, 34.97, result.Subtotal)
	assert.Equal(t, DeliveryFee, result.DeliveryFee)
	assert.Equal(t, 0.0, result.Discount)
	assert.Equal(t, 37.96, result.AmountDue)
	st.AssertExpectations(t)
}

func TestPlaceOrderAppliesCoupon(t *testing.T) {
	st := new(storeMock)
	st.On("Put", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewService(st, zap.NewNop(), metrics.NewRegistry())

	cmd := testCommand()
	cmd.CouponCode = "healthy10"

	result, err := svc.PlaceOrder(context.Background(), cmd)
	require.NoError(t, err)

	// 10% of 34.97 rounded to cents.
	assert.Equal(t, 3.50, result.Discount)
	assert.Equal(t, 34.46, result.AmountDue)
	// The discount never touches the stored total.
	assert.Equal(t, 34.97, result.Order.Total)
}

func TestPlaceOrderRejectsUnknownCoupon(t *testing.T) {
	st := new(storeMock)

	svc := NewService(st, zap.NewNop(), metrics.NewRegistry())

	cmd := testCommand()
	cmd.CouponCode = "NOPE99"

	_, err := svc.PlaceOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidCoupon)
	st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	st := new(storeMock)

	svc := NewService(st, zap.NewNop(), metrics.NewRegistry())

	cmd := testCommand()
	cmd.Items = nil

	_, err := svc.PlaceOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrValidation)
	st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
