package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.OrderID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_line_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	recipient, err := order.NewRecipient("Jane", "010-1234-5678", "12 Elm St")
	suite.Require().NoError(err)

	couponID := int64(7)
	first, err := order.NewLineItem(1, &couponID, "apples", 1000, 100, 900, 2)
	suite.Require().NoError(err)
	second, err := order.NewLineItem(2, nil, "pears", 2000, 0, 2000, 1)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewOrderID(time.Now()), 42, "member-1",
		recipient, []order.LineItem{first, second},
		3000, 100, 2900, 0, "leave at door", time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.LineItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})
	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAggregate() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(testOrder.CustomerID(), loaded.CustomerID())
	suite.Equal(testOrder.MemberID(), loaded.MemberID())
	suite.Equal(testOrder.PaymentAmount(), loaded.PaymentAmount())
	suite.Equal(testOrder.Status(), loaded.Status())
	suite.Equal(testOrder.Version(), loaded.Version())

	suite.Require().Len(loaded.Items(), 2)
	suite.Equal(int64(1), loaded.Items()[0].ProductID())
	suite.Require().NotNil(loaded.Items()[0].CouponID())
	suite.Equal(int64(7), *loaded.Items()[0].CouponID())
	suite.Equal(int64(2), loaded.Items()[1].ProductID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewOrderID(time.Now()))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndItems() {
	ctx := context.Background()
	policy, err := order.NewTransitionPolicy()
	suite.Require().NoError(err)

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(policy, order.PaymentCompleted))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentCompleted, loaded.Status())
	suite.Equal(int64(2), loaded.Version())
	for _, item := range loaded.Items() {
		suite.Equal(order.PaymentCompleted, item.Status())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_VersionConflict() {
	ctx := context.Background()
	policy, err := order.NewTransitionPolicy()
	suite.Require().NoError(err)

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two copies loaded at the same version.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(policy, order.PaymentCompleted))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(policy, order.Canceled))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// The losing write changed nothing.
	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentCompleted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByIDs_ReturnsOnlyKnownOrders() {
	ctx := context.Background()
	first := suite.createTestOrder()
	second := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	unknown := kernel.NewOrderID(time.Now())
	loaded, err := suite.repository.GetAllByIDs(ctx,
		[]kernel.OrderID{first.ID(), second.ID(), unknown})
	suite.Require().NoError(err)
	suite.Len(loaded, 2)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
