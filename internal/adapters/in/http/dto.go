package http

import "time"

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderItemRequest is one line item of an order placement request.
type PlaceOrderItemRequest struct {
	ProductID      int64  `json:"productId"`
	CouponID       *int64 `json:"couponId,omitempty"`
	Name           string `json:"name"`
	OriginPrice    int    `json:"originPrice"`
	DiscountAmount int    `json:"discountAmount"`
	FinalPrice     int    `json:"finalPrice"`
	Quantity       int    `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID       int64                   `json:"customerId"`
	RecipientName    string                  `json:"recipientName"`
	RecipientPhone   string                  `json:"recipientPhone"`
	RecipientAddress string                  `json:"recipientAddress"`
	Items            []PlaceOrderItemRequest `json:"items"`
	OriginAmount     int                     `json:"originAmount"`
	DiscountAmount   int                     `json:"discountAmount"`
	PaymentAmount    int                     `json:"paymentAmount"`
	DeliveryFee      int                     `json:"deliveryFee"`
	Memo             string                  `json:"memo"`
	CardNumber       string                  `json:"cardNumber"`
}

// PlaceOrderResponse carries the id of a freshly placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// ChangeStatusRequest is the body of the status change endpoints.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// BulkChangeStatusRequest is the body of the bulk status change endpoint.
type BulkChangeStatusRequest struct {
	OrderIDs []string `json:"orderIds"`
	Status   string   `json:"status"`
}

// OrderItemResponse is one line item of an order detail.
type OrderItemResponse struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	ProductImage   string `json:"productImage,omitempty"`
	OriginPrice    int    `json:"originPrice"`
	DiscountAmount int    `json:"discountAmount"`
	FinalPrice     int    `json:"finalPrice"`
	Quantity       int    `json:"quantity"`
	Status         string `json:"status"`
}

// OrderDetailResponse is the body of GET /api/v1/orders/{id}.
type OrderDetailResponse struct {
	ID                      string              `json:"id"`
	Status                  string              `json:"status"`
	RecipientName           string              `json:"recipientName"`
	RecipientPhone          string              `json:"recipientPhone"`
	RecipientAddress        string              `json:"recipientAddress"`
	OriginAmount            int                 `json:"originAmount"`
	DiscountAmount          int                 `json:"discountAmount"`
	PaymentAmount           int                 `json:"paymentAmount"`
	DeliveryFee             int                 `json:"deliveryFee"`
	Memo                    string              `json:"memo,omitempty"`
	CreatedAt               time.Time           `json:"createdAt"`
	Items                   []OrderItemResponse `json:"items"`
	ProductServiceAvailable bool                `json:"productServiceAvailable"`
}

// OrderSummaryResponse is one row of the customer order list.
type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	RecipientName string    `json:"recipientName"`
	OriginAmount  int       `json:"originAmount"`
	PaymentAmount int       `json:"paymentAmount"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CountOrdersResponse is the body of the order count endpoint.
type CountOrdersResponse struct {
	Count int64 `json:"count"`
}
