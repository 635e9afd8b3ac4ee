// Package http exposes the service's REST API on echo.
// Handlers translate between transport DTOs and application commands/queries;
// all business decisions live in the handlers they delegate to.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/identity"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	changeLineItemStatusHandler commands.ChangeLineItemStatusCommandHandler
	bulkChangeStatusHandler     commands.BulkChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	countOrdersHandler       queries.CountOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeLineItemStatusHandler commands.ChangeLineItemStatusCommandHandler,
	bulkChangeStatusHandler commands.BulkChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	countOrdersHandler queries.CountOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		changeLineItemStatusHandler: changeLineItemStatusHandler,
		bulkChangeStatusHandler:     bulkChangeStatusHandler,
		getOrderHandler:             getOrderHandler,
		getCustomerOrdersHandler:    getCustomerOrdersHandler,
		countOrdersHandler:          countOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", identity.Middleware())

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.PATCH("/orders/status", s.BulkChangeOrderStatus)
	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)
	api.PATCH("/orders/:orderId/items/:productId/status", s.ChangeLineItemStatus)
	api.GET("/customers/:customerId/orders", s.GetCustomerOrders)
	api.GET("/customers/:customerId/orders/count", s.CountOrders)
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, ok := identity.FromContext(ctx.Request().Context())
	if !ok || id.UserID == "" {
		return badRequest(ctx, "Missing user identity")
	}

	items := make([]commands.PlaceOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.PlaceOrderItem{
			ProductID:      item.ProductID,
			CouponID:       item.CouponID,
			Name:           item.Name,
			OriginPrice:    item.OriginPrice,
			DiscountAmount: item.DiscountAmount,
			FinalPrice:     item.FinalPrice,
			Quantity:       item.Quantity,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(request.CustomerID, id.UserID,
		request.RecipientName, request.RecipientPhone, request.RecipientAddress,
		items,
		request.OriginAmount, request.DiscountAmount, request.PaymentAmount, request.DeliveryFee,
		request.Memo, request.CardNumber)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId} - retrieves one order of the
// requesting member.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	id, ok := identity.FromContext(ctx.Request().Context())
	if !ok || id.UserID == "" {
		return badRequest(ctx, "Missing user identity")
	}

	query, err := queries.NewGetOrderQuery(orderID, id.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	items := make([]OrderItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			ProductImage:   item.ProductImage,
			OriginPrice:    item.OriginPrice,
			DiscountAmount: item.DiscountAmount,
			FinalPrice:     item.FinalPrice,
			Quantity:       item.Quantity,
			Status:         item.Status,
		})
	}

	return ctx.JSON(http.StatusOK, OrderDetailResponse{
		ID:                      detail.ID,
		Status:                  detail.Status,
		RecipientName:           detail.RecipientName,
		RecipientPhone:          detail.RecipientPhone,
		RecipientAddress:        detail.RecipientAddress,
		OriginAmount:            detail.OriginAmount,
		DiscountAmount:          detail.DiscountAmount,
		PaymentAmount:           detail.PaymentAmount,
		DeliveryFee:             detail.DeliveryFee,
		Memo:                    detail.Memo,
		CreatedAt:               detail.CreatedAt,
		Items:                   items,
		ProductServiceAvailable: detail.ProductServiceAvailable,
	})
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeLineItemStatus handles PATCH /api/v1/orders/{orderId}/items/{productId}/status.
func (s *Server) ChangeLineItemStatus(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var productID int64
	if err = echo.PathParamsBinder(ctx).Int64("productId", &productID).BindError(); err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewChangeLineItemStatusCommand(orderID, productID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeLineItemStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkChangeOrderStatus handles PATCH /api/v1/orders/status - moves a batch of
// orders to one status, all or nothing.
func (s *Server) BulkChangeOrderStatus(ctx echo.Context) error {
	var request BulkChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.OrderID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		orderID, err := kernel.OrderIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, orderID)
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewBulkChangeOrderStatusCommand(orderIDs, status)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.bulkChangeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerOrders handles GET /api/v1/customers/{customerId}/orders.
// Supports status, memberId, recipientName/recipientPhone/recipientAddress,
// and startDate/endDate (RFC 3339) filters plus page/size paging.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	var customerID int64
	if err := echo.PathParamsBinder(ctx).Int64("customerId", &customerID).BindError(); err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	status, err := parseStatusParam(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "Invalid status: "+ctx.QueryParam("status"))
	}

	startDate, err := parseTimeParam(ctx.QueryParam("startDate"))
	if err != nil {
		return badRequest(ctx, "Invalid startDate")
	}
	endDate, err := parseTimeParam(ctx.QueryParam("endDate"))
	if err != nil {
		return badRequest(ctx, "Invalid endDate")
	}

	var page, size int
	if err = echo.QueryParamsBinder(ctx).Int("page", &page).Int("size", &size).BindError(); err != nil {
		return badRequest(ctx, "Invalid paging parameters")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, ctx.QueryParam("memberId"),
		status, startDate, endDate,
		ctx.QueryParam("recipientName"), ctx.QueryParam("recipientPhone"), ctx.QueryParam("recipientAddress"),
		page, size)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(orders))
	for _, row := range orders {
		response = append(response, OrderSummaryResponse{
			ID:            row.ID,
			Status:        row.Status,
			RecipientName: row.RecipientName,
			OriginAmount:  row.OriginAmount,
			PaymentAmount: row.PaymentAmount,
			ItemCount:     row.ItemCount,
			CreatedAt:     row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CountOrders handles GET /api/v1/customers/{customerId}/orders/count.
func (s *Server) CountOrders(ctx echo.Context) error {
	var customerID int64
	if err := echo.PathParamsBinder(ctx).Int64("customerId", &customerID).BindError(); err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	status, err := parseStatusParam(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "Invalid status: "+ctx.QueryParam("status"))
	}

	query, err := queries.NewCountOrdersQuery(customerID, status)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	count, err := s.countOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CountOrdersResponse{Count: count})
}

func parseStatusParam(raw string) (*order.Status, error) {
	if raw == "" {
		return nil, nil
	}
	status, err := order.StatusFromString(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates application errors to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrTransitionViolation),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrCouponAlreadyUsed),
		errors.Is(err, commands.ErrPaymentDeclined),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrServiceUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "A collaborating service is unavailable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
