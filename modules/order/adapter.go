package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// orderAdapter wraps the order ServiceContainer for type-safe cross-module
// calls. It implements OrderPort.
type orderAdapter struct {
	container mono.ServiceContainer
}

// NewOrderAdapter creates a new adapter for order services.
// container is the order module's ServiceContainer, received via
// SetDependencyServiceContainer.
func NewOrderAdapter(container mono.ServiceContainer) OrderPort {
	if container == nil {
		panic("order adapter requires non-nil ServiceContainer")
	}
	return &orderAdapter{container: container}
}

// PlaceOrder places an order via the place service.
func (a *orderAdapter) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "place", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("place service call failed: %w", err)
	}
	return &resp, nil
}

// GetOrder retrieves an order by ID via the get service.
func (a *orderAdapter) GetOrder(ctx context.Context, id uint) (*OrderResponse, error) {
	req := GetOrderRequest{ID: id}
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// ListOrders lists all orders via the list service.
func (a *orderAdapter) ListOrders(ctx context.Context) (*ListOrdersResponse, error) {
	req := ListOrdersRequest{}
	var resp ListOrdersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}
