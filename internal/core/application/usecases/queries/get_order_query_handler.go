package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler serves the order detail read path.
// The order and its items are read straight from the database; product names
// and images come from the product service. A product service failure does
// not fail the query: the detail degrades to stored data and the response is
// flagged accordingly.
type GetOrderQueryHandler struct {
	db       *gorm.DB
	products ports.ProductClient
	logger   *slog.Logger
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection and the product service client.
func NewGetOrderQueryHandler(db *gorm.DB, products ports.ProductClient, logger *slog.Logger) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, products: products, logger: logger}
}

// Handle executes the order detail query.
// Returns errs.ErrObjectNotFound when the order does not exist or belongs to
// a different member.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			recipient_name,
			recipient_phone,
			recipient_address,
			origin_amount,
			discount_amount,
			payment_amount,
			delivery_fee,
			memo,
			created_at
		FROM orders
		WHERE id = ? AND member_id = ?
	`, query.OrderID().String(), query.MemberID()).Row()

	err := row.Scan(
		&response.ID,
		&status,
		&response.RecipientName,
		&response.RecipientPhone,
		&response.RecipientAddress,
		&response.OriginAmount,
		&response.DiscountAmount,
		&response.PaymentAmount,
		&response.DeliveryFee,
		&response.Memo,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Status = order.Status(status).String()

	items, err := h.getItems(ctx, query.OrderID().String())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Items = items

	response.ProductServiceAvailable = h.enrich(ctx, response.Items)

	return response, nil
}

func (h GetOrderQueryHandler) getItems(ctx context.Context, orderID string) ([]GetOrderItemResponse, error) {
	items := make([]GetOrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			origin_price,
			discount_amount,
			final_price,
			quantity,
			status
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderItemResponse
		var status int
		err = rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.OriginPrice,
			&item.DiscountAmount,
			&item.FinalPrice,
			&item.Quantity,
			&status,
		)
		if err != nil {
			return nil, err
		}
		item.Status = order.Status(status).String()
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// enrich overlays product service data onto the items. Reports whether the
// product service answered; on failure the stored names are kept as-is.
func (h GetOrderQueryHandler) enrich(ctx context.Context, items []GetOrderItemResponse) bool {
	if len(items) == 0 {
		return true
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := h.products.GetByIDs(ctx, ids)
	if err != nil {
		h.logger.Warn("product service unavailable, serving degraded order detail", "error", err)
		return false
	}

	byID := make(map[int64]ports.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range items {
		p, ok := byID[items[i].ProductID]
		if !ok {
			continue
		}
		items[i].Name = p.Name
		items[i].ProductImage = p.ImageURL
	}

	return true
}
