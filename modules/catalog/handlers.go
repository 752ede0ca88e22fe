package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	domain "github.com/example/order-management/domain/catalog"
	"github.com/example/order-management/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createProduct handles the catalog.create service request. Business
// failures travel back as error codes on the response so callers on the
// other side of the service container keep the failure kind.
func (m *Module) createProduct(ctx context.Context, req domain.CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.service.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return ProductResponse{ErrorCode: CodeInvalidInput, Error: err.Error()}, nil
		}
		return ProductResponse{ErrorCode: CodeInternal, Error: err.Error()}, nil
	}

	if m.eventBus != nil {
		event := events.ProductCreatedEvent{
			EventID:   uuid.New().String(),
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			CreatedAt: time.Now(),
		}
		if err := events.ProductCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; the product is already saved.
			log.Printf("[catalog] Warning: failed to publish ProductCreated event for product %d: %v", p.ID, err)
		}
	}

	return ProductResponse{Product: p}, nil
}

// getProduct handles the catalog.get service request.
func (m *Module) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	p, fromCache, err := m.service.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ProductResponse{ErrorCode: CodeNotFound, Error: err.Error()}, nil
		}
		return ProductResponse{ErrorCode: CodeInternal, Error: err.Error()}, nil
	}
	return ProductResponse{Product: p, FromCache: fromCache}, nil
}

// listProducts handles the catalog.list service request.
func (m *Module) listProducts(ctx context.Context, _ ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, fromCache, err := m.service.List(ctx)
	if err != nil {
		return ListProductsResponse{ErrorCode: CodeInternal, Error: err.Error()}, nil
	}
	return ListProductsResponse{
		Products:  products,
		Total:     len(products),
		FromCache: fromCache,
	}, nil
}
