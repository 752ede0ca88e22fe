package order

import (
	"context"

	domain "github.com/example/order-management/domain/order"
)

// Error codes carried on service responses across the service container.
const (
	CodeInvalidInput      = "invalid_input"
	CodeProductNotFound   = "product_not_found"
	CodeStockNotAvailable = "stock_not_available"
	CodeConflict          = "conflict"
	CodeNotFound          = "order_not_found"
	CodeInternal          = "internal"
)

// PlaceOrderRequest is the request for placing an order.
type PlaceOrderRequest struct {
	Items []domain.ItemRequest `json:"items"`
}

// OrderResponse is the response for a single order. ErrorCode is empty on
// success.
type OrderResponse struct {
	Order     *domain.Order `json:"order,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// GetOrderRequest is the request for getting an order.
type GetOrderRequest struct {
	ID uint `json:"id"`
}

// ListOrdersRequest is the request for listing orders.
type ListOrdersRequest struct{}

// ListOrdersResponse is the response for listing orders.
type ListOrdersResponse struct {
	Orders    []domain.Order `json:"orders"`
	Total     int            `json:"total"`
	ErrorCode string         `json:"error_code,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// OrderPort is the interface driving adapters use to reach the order module.
type OrderPort interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, id uint) (*OrderResponse, error)
	ListOrders(ctx context.Context) (*ListOrdersResponse, error)
}
