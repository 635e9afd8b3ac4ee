package queries

import (
	"context"

	"gorm.io/gorm"
)

// CountOrdersQueryHandler counts a customer's orders in the database.
type CountOrdersQueryHandler struct {
	db *gorm.DB
}

// NewCountOrdersQueryHandler creates a handler for order count queries.
func NewCountOrdersQueryHandler(db *gorm.DB) CountOrdersQueryHandler {
	return CountOrdersQueryHandler{db: db}
}

// Handle executes the count query.
func (h CountOrdersQueryHandler) Handle(ctx context.Context, query CountOrdersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	sql := "SELECT COUNT(*) FROM orders WHERE customer_id = ?"
	args := []any{query.CustomerID()}

	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, *query.Status())
	}

	var count int64
	row := h.db.WithContext(ctx).Raw(sql, args...).Row()
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
