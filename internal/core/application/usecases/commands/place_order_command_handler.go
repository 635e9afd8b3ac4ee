package commands

import (
	"context"
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/model/payment"
	"orderservice/internal/core/domain/model/saga"
	"orderservice/internal/core/domain/services"
	"orderservice/internal/core/ports"
)

var (
	// ErrCouponAlreadyUsed is returned when a submitted coupon was already
	// consumed by a different order. Nothing else is contacted once this is
	// detected.
	ErrCouponAlreadyUsed = errors.New("coupon already used")

	// ErrPaymentDeclined is returned when the payment service refuses to
	// authorize the net amount.
	ErrPaymentDeclined = errors.New("payment declined")
)

// PlaceOrderCommandHandler orchestrates the order placement flow across the
// coupon, stock, and payment services and the local database.
//
// Placement proceeds in these steps, any failure aborting the rest:
//  1. generate the order id, which doubles as the idempotency token for every
//     external call;
//  2. persist a pending saga row so a crash mid-flow is visible to the
//     recovery sweep;
//  3. consume the submitted coupons; an already-used coupon aborts before the
//     stock service is contacted;
//  4. one batch stock-availability check; unavailable items are canceled and
//     their amounts subtracted from the submitted totals;
//  5. authorize the net amount with the payment service;
//  6. persist the order, its payment record, and the completed saga in one
//     transaction.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, policy, coupons, stock, payments)
//	orderID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrCouponAlreadyUsed):
//	    // reject the request, nothing was charged
//	case errors.Is(err, ErrPaymentDeclined):
//	    // reject the request, nothing was charged
//	case err != nil:
//	    // placement failed; the recovery sweep picks up the pending saga
//	default:
//	    // order placed, payment completed
//	}
type PlaceOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	policy     order.TransitionPolicy
	settler    services.AvailabilitySettler
	coupons    ports.CouponClient
	stock      ports.StockClient
	payments   ports.PaymentClient
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a PlacementUoWFactory for transactional persistence, the status
// transition policy, and the three collaborator clients.
func NewPlaceOrderCommandHandler(uowFactory PlacementUoWFactory, policy order.TransitionPolicy,
	coupons ports.CouponClient, stock ports.StockClient, payments ports.PaymentClient,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		settler:    services.NewAvailabilitySettler(),
		coupons:    coupons,
		stock:      stock,
		payments:   payments,
	}
}

// Handle processes the placement command and returns the generated order id.
// On success the order is persisted in PAYMENT_COMPLETED status together with
// its payment record. On failure before the final commit the pending saga row
// stays behind for the recovery sweep.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	now := time.Now()
	orderID := kernel.NewOrderID(now)

	placementSaga, err := saga.NewPlacementSaga(orderID, now)
	if err != nil {
		return kernel.OrderID{}, err
	}
	if err = h.addSaga(ctx, placementSaga); err != nil {
		return kernel.OrderID{}, err
	}

	if err = h.consumeCoupons(ctx, orderID, placementSaga, cmd.Items()); err != nil {
		return kernel.OrderID{}, err
	}

	items, err := buildLineItems(cmd.Items())
	if err != nil {
		return kernel.OrderID{}, err
	}

	settlement, err := h.checkAvailability(ctx, orderID, placementSaga, cmd.Items(), items)
	if err != nil {
		return kernel.OrderID{}, err
	}

	netOrigin := cmd.OriginAmount() - settlement.CanceledOriginAmount
	netDiscount := cmd.DiscountAmount() - settlement.CanceledDiscountAmount
	netPayment := cmd.PaymentAmount() - settlement.CanceledPaymentAmount

	recipient, err := order.NewRecipient(cmd.RecipientName(), cmd.RecipientPhone(), cmd.RecipientAddr())
	if err != nil {
		return kernel.OrderID{}, err
	}

	newOrder, err := order.NewOrder(orderID, cmd.CustomerID(), cmd.MemberID(), recipient, items,
		netOrigin, netDiscount, netPayment, cmd.DeliveryFee(), cmd.Memo(), now)
	if err != nil {
		return kernel.OrderID{}, err
	}

	paymentRecord, err := payment.NewPayment(orderID, cmd.CardNumber(),
		cmd.DeliveryFee(), netDiscount, netPayment, netOrigin, now)
	if err != nil {
		return kernel.OrderID{}, err
	}

	success, err := h.payments.Authorize(ctx, orderID, netPayment, cmd.CardNumber())
	if err != nil {
		return kernel.OrderID{}, err
	}
	if !success {
		placementSaga.Fail(time.Now())
		if err = h.updateSaga(ctx, placementSaga); err != nil {
			return kernel.OrderID{}, err
		}
		return kernel.OrderID{}, ErrPaymentDeclined
	}
	placementSaga.MarkPaymentAuthorized(time.Now())
	if err = h.updateSaga(ctx, placementSaga); err != nil {
		return kernel.OrderID{}, err
	}

	if err = newOrder.CompletePayment(h.policy); err != nil {
		return kernel.OrderID{}, err
	}

	placementSaga.Complete(time.Now())
	if err = h.persist(ctx, newOrder, paymentRecord, placementSaga); err != nil {
		return kernel.OrderID{}, err
	}

	return orderID, nil
}

// consumeCoupons marks every distinct submitted coupon as used, carrying the
// order id as the idempotency token. An already-used coupon fails the saga
// and aborts the flow before the stock service is contacted.
func (h PlaceOrderCommandHandler) consumeCoupons(ctx context.Context, orderID kernel.OrderID,
	placementSaga *saga.PlacementSaga, items []PlaceOrderItem,
) error {
	seen := make(map[int64]struct{})
	used := false

	for _, item := range items {
		if item.CouponID == nil {
			continue
		}
		couponID := *item.CouponID
		if _, ok := seen[couponID]; ok {
			continue
		}
		seen[couponID] = struct{}{}

		consumed, err := h.coupons.Use(ctx, couponID, orderID)
		if err != nil {
			return err
		}
		if !consumed {
			placementSaga.Fail(time.Now())
			if err = h.updateSaga(ctx, placementSaga); err != nil {
				return err
			}
			return ErrCouponAlreadyUsed
		}
		used = true
	}

	if used {
		placementSaga.MarkCouponConsumed(time.Now())
		if err := h.updateSaga(ctx, placementSaga); err != nil {
			return err
		}
	}

	return nil
}

// checkAvailability submits one batch request for all items and settles the
// line items against the response.
func (h PlaceOrderCommandHandler) checkAvailability(ctx context.Context, orderID kernel.OrderID,
	placementSaga *saga.PlacementSaga, requested []PlaceOrderItem, items []order.LineItem,
) (services.Settlement, error) {
	checks := make([]ports.StockCheckItem, 0, len(requested))
	for _, item := range requested {
		checks = append(checks, ports.StockCheckItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	availabilities, err := h.stock.CheckAvailability(ctx, orderID, checks)
	if err != nil {
		return services.Settlement{}, err
	}

	available := make(map[int64]bool, len(availabilities))
	for _, a := range availabilities {
		available[a.ProductID] = a.Available
	}

	placementSaga.MarkStockChecked(time.Now())
	if err = h.updateSaga(ctx, placementSaga); err != nil {
		return services.Settlement{}, err
	}

	return h.settler.Settle(items, available)
}

// persist writes the order, payment record, and completed saga atomically.
func (h PlaceOrderCommandHandler) persist(ctx context.Context,
	newOrder *order.Order, paymentRecord *payment.Payment, placementSaga *saga.PlacementSaga,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}
	if err := uow.PaymentRepository().Add(ctx, paymentRecord); err != nil {
		return err
	}
	if err := uow.SagaRepository().Update(ctx, placementSaga); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// addSaga persists the freshly created saga row in its own transaction so the
// recovery sweep can see placements that crash later in the flow.
func (h PlaceOrderCommandHandler) addSaga(ctx context.Context, placementSaga *saga.PlacementSaga) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SagaRepository().Add(ctx, placementSaga); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// updateSaga checkpoints the saga's step flags in its own transaction.
func (h PlaceOrderCommandHandler) updateSaga(ctx context.Context, placementSaga *saga.PlacementSaga) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SagaRepository().Update(ctx, placementSaga); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildLineItems(requested []PlaceOrderItem) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(requested))
	for _, item := range requested {
		lineItem, err := order.NewLineItem(item.ProductID, item.CouponID, item.Name,
			item.OriginPrice, item.DiscountAmount, item.FinalPrice, item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, lineItem)
	}

	return items, nil
}
