package cmd

import (
	"log/slog"

	"orderservice/internal/adapters/out/coupon"
	"orderservice/internal/adapters/out/payment"
	"orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/product"
	"orderservice/internal/adapters/out/stock"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     order.TransitionPolicy
	logger     *slog.Logger

	couponClient  *coupon.Client
	stockClient   *stock.Client
	paymentClient *payment.Client
	productClient *product.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	policy, err := order.NewTransitionPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:        policy,
		logger:        logger,
		couponClient:  coupon.NewClient(config.CouponServiceURL),
		stockClient:   stock.NewClient(config.StockServiceURL),
		paymentClient: payment.NewClient(config.PaymentServiceURL),
		productClient: product.NewClient(config.ProductServiceURL),
	}, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.policy, c.couponClient, c.stockClient, c.paymentClient)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateChangeLineItemStatusCommandHandler() commands.ChangeLineItemStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeLineItemStatusCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateBulkChangeOrderStatusCommandHandler() commands.BulkChangeOrderStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkChangeOrderStatusCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateRecoverPlacementSagasCommandHandler() commands.RecoverPlacementSagasCommandHandler {
	var f commands.RecoveryUoWFactory = FuncRecoveryUoWFactory(func() commands.RecoveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecoverPlacementSagasCommandHandler(f, c.paymentClient,
		c.config.SagaGracePeriod, c.config.SagaMaxAttempts, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.productClient, c.logger)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersQueryHandler() queries.CountOrdersQueryHandler {
	return queries.NewCountOrdersQueryHandler(c.gormDB)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncRecoveryUoWFactory func() commands.RecoveryUoW

func (f FuncRecoveryUoWFactory) Create() commands.RecoveryUoW {
	return f()
}
