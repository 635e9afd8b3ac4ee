package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/model/payment"
	"orderservice/internal/core/domain/model/saga"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PlacementOrderRepo struct{ mock.Mock }

func (m *PlacementOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *PlacementOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *PlacementOrderRepo) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *PlacementOrderRepo) GetAllByIDs(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type PlacementPaymentRepo struct{ mock.Mock }

func (m *PlacementPaymentRepo) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PlacementPaymentRepo) GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type PlacementSagaRepo struct{ mock.Mock }

func (m *PlacementSagaRepo) Add(ctx context.Context, s *saga.PlacementSaga) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *PlacementSagaRepo) Update(ctx context.Context, s *saga.PlacementSaga) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *PlacementSagaRepo) GetAllStalePending(ctx context.Context, before time.Time) ([]*saga.PlacementSaga, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*saga.PlacementSaga), args.Error(1)
}

type PlacementUnitOfWork struct{ mock.Mock }

func (m *PlacementUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *PlacementUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *PlacementUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *PlacementUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *PlacementUnitOfWork) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *PlacementUnitOfWork) SagaRepository() ports.SagaRepository {
	args := m.Called()
	return args.Get(0).(ports.SagaRepository)
}

type PlacementUoWFactory struct{ mock.Mock }

func (m *PlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

type CouponClientMock struct{ mock.Mock }

func (m *CouponClientMock) Use(ctx context.Context, couponID int64, orderID kernel.OrderID) (bool, error) {
	args := m.Called(ctx, couponID, orderID)
	return args.Bool(0), args.Error(1)
}

type StockClientMock struct{ mock.Mock }

func (m *StockClientMock) CheckAvailability(ctx context.Context, orderID kernel.OrderID,
	items []ports.StockCheckItem,
) ([]ports.StockAvailability, error) {
	args := m.Called(ctx, orderID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.StockAvailability), args.Error(1)
}

type PaymentClientMock struct{ mock.Mock }

func (m *PaymentClientMock) Authorize(ctx context.Context, orderID kernel.OrderID,
	amount int, cardNumber string,
) (bool, error) {
	args := m.Called(ctx, orderID, amount, cardNumber)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentClientMock) Cancel(ctx context.Context, orderID kernel.OrderID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type placementFixture struct {
	orderRepo   *PlacementOrderRepo
	paymentRepo *PlacementPaymentRepo
	sagaRepo    *PlacementSagaRepo
	uow         *PlacementUnitOfWork
	factory     *PlacementUoWFactory
	coupons     *CouponClientMock
	stock       *StockClientMock
	payments    *PaymentClientMock
}

func newPlacementFixture(ctx context.Context) *placementFixture {
	f := &placementFixture{
		orderRepo:   new(PlacementOrderRepo),
		paymentRepo: new(PlacementPaymentRepo),
		sagaRepo:    new(PlacementSagaRepo),
		uow:         new(PlacementUnitOfWork),
		factory:     new(PlacementUoWFactory),
		coupons:     new(CouponClientMock),
		stock:       new(StockClientMock),
		payments:    new(PaymentClientMock),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Commit", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("PaymentRepository").Return(f.paymentRepo)
	f.uow.On("SagaRepository").Return(f.sagaRepo)

	return f
}

func (f *placementFixture) handler(t *testing.T) commands.PlaceOrderCommandHandler {
	t.Helper()
	policy, err := order.NewTransitionPolicy()
	require.NoError(t, err)
	return commands.NewPlaceOrderCommandHandler(f.factory, policy, f.coupons, f.stock, f.payments)
}

func placementCommand(t *testing.T, items []commands.PlaceOrderItem,
	originAmount, discountAmount, paymentAmount int,
) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(42, "member-1",
		"Jane", "010-1234-5678", "12 Elm St",
		items, originAmount, discountAmount, paymentAmount, 0, "", "4111-1111-1111-1111")
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	couponID := int64(7)
	items := []commands.PlaceOrderItem{
		{ProductID: 1, CouponID: &couponID, Name: "apples", OriginPrice: 1000, DiscountAmount: 100, FinalPrice: 900, Quantity: 2},
		{ProductID: 2, Name: "pears", OriginPrice: 2000, FinalPrice: 2000, Quantity: 1},
	}
	cmd := placementCommand(t, items, 3000, 100, 2900)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.sagaRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.coupons.On("Use", ctx, couponID, mock.Anything).Return(true, nil).Once()
	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return([]ports.StockAvailability{{ProductID: 1, Available: true}, {ProductID: 2, Available: true}}, nil).Once()
	f.payments.On("Authorize", ctx, mock.Anything, 2900, "4111-1111-1111-1111").Return(true, nil).Once()

	var persistedOrder *order.Order
	f.orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persistedOrder = args.Get(1).(*order.Order)
	}).Return(nil).Once()

	var persistedPayment *payment.Payment
	f.paymentRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persistedPayment = args.Get(1).(*payment.Payment)
	}).Return(nil).Once()

	orderID, err := f.handler(t).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, orderID.Validate())

	require.NotNil(t, persistedOrder)
	assert.True(t, persistedOrder.ID().IsEqual(orderID))
	assert.Equal(t, order.PaymentCompleted, persistedOrder.Status())
	for _, item := range persistedOrder.Items() {
		assert.Equal(t, order.PaymentCompleted, item.Status())
	}
	assert.Equal(t, 2900, persistedOrder.PaymentAmount())

	require.NotNil(t, persistedPayment)
	assert.Equal(t, 2900, persistedPayment.PaymentAmount())
	assert.Equal(t, 3000, persistedPayment.OriginAmount())

	f.coupons.AssertExpectations(t)
	f.stock.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.paymentRepo.AssertExpectations(t)
	f.sagaRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CouponAlreadyUsed(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	couponID := int64(7)
	items := []commands.PlaceOrderItem{
		{ProductID: 1, CouponID: &couponID, Name: "apples", OriginPrice: 1000, DiscountAmount: 100, FinalPrice: 900, Quantity: 1},
	}
	cmd := placementCommand(t, items, 1000, 100, 900)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.coupons.On("Use", ctx, couponID, mock.Anything).Return(false, nil).Once()

	var failedSaga *saga.PlacementSaga
	f.sagaRepo.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		failedSaga = args.Get(1).(*saga.PlacementSaga)
	}).Return(nil).Once()

	_, err := f.handler(t).Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrCouponAlreadyUsed)
	require.NotNil(t, failedSaga)
	assert.Equal(t, saga.StateFailed, failedSaga.State())

	// Nothing past the coupon step is contacted.
	f.stock.AssertNotCalled(t, "CheckAvailability", mock.Anything, mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.sagaRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PartialAvailability(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	items := []commands.PlaceOrderItem{
		{ProductID: 1, Name: "apples", OriginPrice: 1000, DiscountAmount: 100, FinalPrice: 900, Quantity: 1},
		{ProductID: 2, Name: "pears", OriginPrice: 2000, FinalPrice: 2000, Quantity: 1},
		{ProductID: 3, Name: "plums", OriginPrice: 500, FinalPrice: 500, Quantity: 1},
	}
	cmd := placementCommand(t, items, 3500, 100, 3400)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.sagaRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return([]ports.StockAvailability{
			{ProductID: 1, Available: false},
			{ProductID: 2, Available: true},
			{ProductID: 3, Available: false},
		}, nil).Once()

	// Net payable: 3400 - 900 - 500 = 2000.
	f.payments.On("Authorize", ctx, mock.Anything, 2000, "4111-1111-1111-1111").Return(true, nil).Once()

	var persistedOrder *order.Order
	f.orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persistedOrder = args.Get(1).(*order.Order)
	}).Return(nil).Once()
	f.paymentRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

	_, err := f.handler(t).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persistedOrder)
	assert.Equal(t, 2000, persistedOrder.PaymentAmount())
	assert.Equal(t, 3500-1500, persistedOrder.OriginAmount())
	assert.Equal(t, 0, persistedOrder.DiscountAmount())

	statuses := map[int64]order.Status{}
	for _, item := range persistedOrder.Items() {
		statuses[item.ProductID()] = item.Status()
	}
	assert.Equal(t, order.Canceled, statuses[1])
	assert.Equal(t, order.PaymentCompleted, statuses[2])
	assert.Equal(t, order.Canceled, statuses[3])

	f.payments.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_AllItemsUnavailable(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	items := []commands.PlaceOrderItem{
		{ProductID: 1, Name: "apples", OriginPrice: 1000, FinalPrice: 1000, Quantity: 1},
	}
	cmd := placementCommand(t, items, 1000, 0, 1000)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.sagaRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return([]ports.StockAvailability{{ProductID: 1, Available: false}}, nil).Once()
	f.payments.On("Authorize", ctx, mock.Anything, 0, "4111-1111-1111-1111").Return(true, nil).Once()

	var persistedOrder *order.Order
	f.orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persistedOrder = args.Get(1).(*order.Order)
	}).Return(nil).Once()
	f.paymentRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

	// The order is still placed with zero net totals.
	_, err := f.handler(t).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persistedOrder)
	assert.Equal(t, 0, persistedOrder.PaymentAmount())
	assert.Equal(t, order.Canceled, persistedOrder.Items()[0].Status())
}

func TestPlaceOrderCommandHandler_Handle_PaymentDeclined(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	cmd := placementCommand(t, []commands.PlaceOrderItem{
		{ProductID: 1, Name: "apples", OriginPrice: 1000, FinalPrice: 1000, Quantity: 1},
	}, 1000, 0, 1000)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return([]ports.StockAvailability{{ProductID: 1, Available: true}}, nil).Once()
	f.payments.On("Authorize", ctx, mock.Anything, 1000, "4111-1111-1111-1111").Return(false, nil).Once()

	var lastSaga *saga.PlacementSaga
	f.sagaRepo.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		lastSaga = args.Get(1).(*saga.PlacementSaga)
	}).Return(nil)

	_, err := f.handler(t).Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrPaymentDeclined)
	require.NotNil(t, lastSaga)
	assert.Equal(t, saga.StateFailed, lastSaga.State())
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_StockServiceUnavailable(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	cmd := placementCommand(t, []commands.PlaceOrderItem{
		{ProductID: 1, Name: "apples", OriginPrice: 1000, FinalPrice: 1000, Quantity: 1},
	}, 1000, 0, 1000)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return(nil, ports.ErrServiceUnavailable).Once()

	_, err := f.handler(t).Handle(ctx, cmd)

	assert.ErrorIs(t, err, ports.ErrServiceUnavailable)
	f.payments.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	_, err := f.handler(t).Handle(ctx, commands.PlaceOrderCommand{})

	assert.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

var errBoom = errors.New("boom")

func TestPlaceOrderCommandHandler_Handle_PersistError(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(ctx)

	cmd := placementCommand(t, []commands.PlaceOrderItem{
		{ProductID: 1, Name: "apples", OriginPrice: 1000, FinalPrice: 1000, Quantity: 1},
	}, 1000, 0, 1000)

	f.sagaRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

	type sagaSnapshot struct {
		state             saga.State
		paymentAuthorized bool
	}
	var checkpoints []sagaSnapshot
	f.sagaRepo.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		s := args.Get(1).(*saga.PlacementSaga)
		checkpoints = append(checkpoints, sagaSnapshot{state: s.State(), paymentAuthorized: s.PaymentAuthorized()})
	}).Return(nil)

	f.stock.On("CheckAvailability", ctx, mock.Anything, mock.Anything).
		Return([]ports.StockAvailability{{ProductID: 1, Available: true}}, nil).Once()
	f.payments.On("Authorize", ctx, mock.Anything, 1000, "4111-1111-1111-1111").Return(true, nil).Once()
	f.orderRepo.On("Add", ctx, mock.Anything).Return(errBoom).Once()

	_, err := f.handler(t).Handle(ctx, cmd)

	assert.ErrorIs(t, err, errBoom)

	// The authorization was checkpointed durably before the failed persist,
	// so the recovery sweep sees the hold it has to void.
	require.NotEmpty(t, checkpoints)
	last := checkpoints[len(checkpoints)-1]
	assert.True(t, last.paymentAuthorized)
	assert.Equal(t, saga.StatePending, last.state)
}
