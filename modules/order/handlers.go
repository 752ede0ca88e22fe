package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/order-management/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// placeOrder handles the order.place service request. Business failures are
// carried back as error codes on the response so the presentation layer can
// map each kind to its status code.
func (m *Module) placeOrder(ctx context.Context, req PlaceOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	created, levels, err := m.engine.PlaceOrder(ctx, req.Items)
	if err != nil {
		return OrderResponse{ErrorCode: codeForPlaceError(err), Error: err.Error()}, nil
	}

	if m.eventBus != nil {
		lines := make([]events.PlacedLine, 0, len(created.Lines))
		for i, line := range created.Lines {
			lines = append(lines, events.PlacedLine{
				ProductID:      line.ProductID,
				Quantity:       line.Quantity,
				UnitPrice:      line.UnitPrice,
				RemainingStock: levels[i].Remaining,
			})
		}
		event := events.OrderPlacedEvent{
			EventID:    uuid.New().String(),
			OrderID:    created.ID,
			TotalPrice: created.TotalPrice,
			Lines:      lines,
			PlacedAt:   time.Now(),
		}
		if err := events.OrderPlacedV1.Publish(m.eventBus, event, nil); err != nil {
			// Best-effort: the order is already committed.
			log.Printf("[order] Warning: failed to publish OrderPlaced event for order %d: %v", created.ID, err)
		}
	}

	return OrderResponse{Order: created}, nil
}

// getOrder handles the order.get service request.
func (m *Module) getOrder(ctx context.Context, req GetOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	o, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return OrderResponse{ErrorCode: CodeNotFound, Error: err.Error()}, nil
		}
		return OrderResponse{ErrorCode: CodeInternal, Error: err.Error()}, nil
	}
	return OrderResponse{Order: o}, nil
}

// listOrders handles the order.list service request.
func (m *Module) listOrders(ctx context.Context, _ ListOrdersRequest, _ *mono.Msg) (ListOrdersResponse, error) {
	orders, err := m.repo.FindAll(ctx)
	if err != nil {
		return ListOrdersResponse{ErrorCode: CodeInternal, Error: err.Error()}, nil
	}
	return ListOrdersResponse{Orders: orders, Total: len(orders)}, nil
}

// codeForPlaceError maps placement failures to wire error codes.
func codeForPlaceError(err error) string {
	var notFound *ProductNotFoundError
	var noStock *StockNotAvailableError
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.As(err, &notFound):
		return CodeProductNotFound
	case errors.As(err, &noStock):
		return CodeStockNotAvailable
	case errors.Is(err, ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
