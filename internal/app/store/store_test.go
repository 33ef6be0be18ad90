package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Put(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *repoMock) Get(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *repoMock) List(ctx context.Context) ([]*domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *repoMock) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *repoMock) UpdateStatus(ctx context.Context, id string, from, to domain.Status, estimating bool) error {
	return m.Called(ctx, id, from, to, estimating).Error(0)
}

func (m *repoMock) SetEstimate(ctx context.Context, id string, distanceKm float64, travelMinutes, etaMinutes int) error {
	return m.Called(ctx, id, distanceKm, travelMinutes, etaMinutes).Error(0)
}

func (m *repoMock) ClearEstimating(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// recordingPublisher collects notifications; err, when set, makes every
// publish fail.
type recordingPublisher struct {
	mu       sync.Mutex
	err      error
	orderIDs []string
}

func (p *recordingPublisher) PublishChange(ctx context.Context, n interfaces.ChangeNotification) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	p.orderIDs = append(p.orderIDs, n.OrderID)
	p.mu.Unlock()
	return nil
}

func validOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("cust-1", "Priya", "42 Garden Lane", []domain.OrderItem{
		{MenuItemID: 1, Name: "Quinoa Power Bowl", UnitPrice: 12.99, UnitCalories: 420, Quantity: 1},
	})
	require.NoError(t, err)
	return order
}

func TestPutNotifiesAfterPersist(t *testing.T) {
	repo := new(repoMock)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	pub := &recordingPublisher{}

	st := New(repo, pub, zap.NewNop())

	order := validOrder(t)
	require.NoError(t, st.Put(context.Background(), order))

	assert.Equal(t, []string{order.ID}, pub.orderIDs)
	repo.AssertExpectations(t)
}

func TestPutRejectsInvalidOrderBeforePersist(t *testing.T) {
	repo := new(repoMock)
	pub := &recordingPublisher{}

	st := New(repo, pub, zap.NewNop())

	order := validOrder(t)
	order.Total += 5 // drift the total away from the item sum

	err := st.Put(context.Background(), order)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, pub.orderIDs)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestPutSwallowsPublishFailure(t *testing.T) {
	repo := new(repoMock)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	pub := &recordingPublisher{err: errors.New("broker unreachable")}

	st := New(repo, pub, zap.NewNop())

	// The polling fallback carries correctness, so the write succeeds.
	assert.NoError(t, st.Put(context.Background(), validOrder(t)))
}

func TestUpdateStatusNotifies(t *testing.T) {
	repo := new(repoMock)
	repo.On("UpdateStatus", mock.Anything, "order-1", domain.StatusConfirmed, domain.StatusPreparing, true).Return(nil).Once()
	pub := &recordingPublisher{}

	st := New(repo, pub, zap.NewNop())

	require.NoError(t, st.UpdateStatus(context.Background(), "order-1", domain.StatusConfirmed, domain.StatusPreparing, true))
	assert.Equal(t, []string{"order-1"}, pub.orderIDs)
}

func TestUpdateStatusConflictDoesNotNotify(t *testing.T) {
	repo := new(repoMock)
	repo.On("UpdateStatus", mock.Anything, "order-1", domain.StatusConfirmed, domain.StatusPreparing, true).
		Return(domain.ErrStatusConflict).Once()
	pub := &recordingPublisher{}

	st := New(repo, pub, zap.NewNop())

	err := st.UpdateStatus(context.Background(), "order-1", domain.StatusConfirmed, domain.StatusPreparing, true)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
	assert.Empty(t, pub.orderIDs)
}

func TestEstimateWritesNotify(t *testing.T) {
	repo := new(repoMock)
	repo.On("SetEstimate", mock.Anything, "order-1", 2.1, 17, 32).Return(nil).Once()
	repo.On("ClearEstimating", mock.Anything, "order-2").Return(nil).Once()
	pub := &recordingPublisher{}

	st := New(repo, pub, zap.NewNop())

	require.NoError(t, st.SetEstimate(context.Background(), "order-1", 2.1, 17, 32))
	require.NoError(t, st.ClearEstimating(context.Background(), "order-2"))
	assert.Equal(t, []string{"order-1", "order-2"}, pub.orderIDs)
}
