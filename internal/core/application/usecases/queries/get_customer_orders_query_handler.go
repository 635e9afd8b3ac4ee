package queries

import (
	"context"

	"orderservice/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler serves the paged customer order list.
// Reads summaries straight from the database; no collaborator involvement.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order list queries.
// Requires a GORM database connection for query execution.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the list query.
// Returns one page of order summaries, newest first. An out-of-range page
// yields an empty slice, not an error.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "WHERE o.customer_id = ?"
	args := []any{query.CustomerID()}

	if query.Status() != nil {
		where += " AND o.status = ?"
		args = append(args, *query.Status())
	}
	if query.MemberID() != "" {
		where += " AND o.member_id = ?"
		args = append(args, query.MemberID())
	}
	if query.RecipientName() != "" {
		where += " AND o.recipient_name = ?"
		args = append(args, query.RecipientName())
	}
	if query.RecipientPhone() != "" {
		where += " AND o.recipient_phone = ?"
		args = append(args, query.RecipientPhone())
	}
	if query.RecipientAddr() != "" {
		where += " AND o.recipient_address LIKE ?"
		args = append(args, "%"+query.RecipientAddr()+"%")
	}
	if query.StartDate() != nil {
		where += " AND o.created_at >= ?"
		args = append(args, *query.StartDate())
	}
	if query.EndDate() != nil {
		where += " AND o.created_at < ?"
		args = append(args, *query.EndDate())
	}

	args = append(args, query.Size(), query.Page()*query.Size())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.recipient_name,
			o.origin_amount,
			o.payment_amount,
			(SELECT COUNT(*) FROM order_line_items i WHERE i.order_id = o.id) AS item_count,
			o.created_at
		FROM orders o
		`+where+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetCustomerOrderResponse, 0)
	for rows.Next() {
		var resp GetCustomerOrderResponse
		var status int
		err = rows.Scan(
			&resp.ID,
			&status,
			&resp.RecipientName,
			&resp.OriginAmount,
			&resp.PaymentAmount,
			&resp.ItemCount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
