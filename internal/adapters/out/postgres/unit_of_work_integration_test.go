package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/adapters/out/postgres/paymentrepo"
	"orderservice/internal/adapters/out/postgres/releaserepo"
	"orderservice/internal/adapters/out/postgres/sagarepo"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/model/payment"
	"orderservice/internal/core/domain/model/saga"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&paymentrepo.PaymentDTO{},
		&releaserepo.ReleaseDTO{},
		&sagarepo.PlacementSagaDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_line_items, payments, releases, placement_sagas").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createPlacementSet() (*order.Order, *payment.Payment, *saga.PlacementSaga) {
	now := time.Now().Truncate(time.Microsecond)
	orderID := kernel.NewOrderID(now)

	recipient, err := order.NewRecipient("Jane", "010-1234-5678", "12 Elm St")
	suite.Require().NoError(err)
	item, err := order.NewLineItem(1, nil, "apples", 1000, 0, 1000, 1)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(orderID, 42, "member-1", recipient,
		[]order.LineItem{item}, 1000, 0, 1000, 0, "", now)
	suite.Require().NoError(err)

	record, err := payment.NewPayment(orderID, "4111-1111-1111-1111", 0, 0, 1000, 1000, now)
	suite.Require().NoError(err)

	placementSaga, err := saga.NewPlacementSaga(orderID, now)
	suite.Require().NoError(err)

	return aggregate, record, placementSaga
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PaymentRepository())
	suite.NotNil(uow2.ReleaseRepository())
	suite.NotNil(uow2.SagaRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsPlacementWriteSet() {
	ctx := context.Background()
	aggregate, record, placementSaga := suite.createPlacementSet()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.SagaRepository().Add(ctx, placementSaga))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	var orderCount, paymentCount, sagaCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&paymentrepo.PaymentDTO{}).Count(&paymentCount).Error)
	suite.Require().NoError(suite.db.Model(&sagarepo.PlacementSagaDTO{}).Count(&sagaCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(1), paymentCount)
	suite.Equal(int64(1), sagaCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWholeWriteSet() {
	ctx := context.Background()
	aggregate, record, placementSaga := suite.createPlacementSet()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.SagaRepository().Add(ctx, placementSaga))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, record))
	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, paymentCount, sagaCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&paymentrepo.PaymentDTO{}).Count(&paymentCount).Error)
	suite.Require().NoError(suite.db.Model(&sagarepo.PlacementSagaDTO{}).Count(&sagaCount).Error)
	suite.Equal(int64(0), orderCount)
	suite.Equal(int64(0), paymentCount)
	suite.Equal(int64(0), sagaCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSagaRepository_StalePendingSweep() {
	ctx := context.Background()
	_, _, placementSaga := suite.createPlacementSet()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SagaRepository().Add(ctx, placementSaga))
	suite.Require().NoError(uow.Commit(ctx))

	// The freshly added saga is not stale yet.
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	stale, err := uow.SagaRepository().GetAllStalePending(ctx, time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Empty(stale)

	// With a future cutoff it shows up.
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	stale, err = uow.SagaRepository().GetAllStalePending(ctx, time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Len(stale, 1)
	suite.True(stale[0].OrderID().IsEqual(placementSaga.OrderID()))
	suite.Equal(saga.StatePending, stale[0].State())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSagaRepository_UpdateTransitionsState() {
	ctx := context.Background()
	_, _, placementSaga := suite.createPlacementSet()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SagaRepository().Add(ctx, placementSaga))
	suite.Require().NoError(uow.Commit(ctx))

	placementSaga.MarkStockChecked(time.Now())
	placementSaga.Complete(time.Now())

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SagaRepository().Update(ctx, placementSaga))
	suite.Require().NoError(uow.Commit(ctx))

	var dto sagarepo.PlacementSagaDTO
	suite.Require().NoError(suite.db.First(&dto, "order_id = ?", placementSaga.OrderID().String()).Error)
	suite.True(dto.StockChecked)
	suite.Equal(int(saga.StateCompleted), dto.State)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
