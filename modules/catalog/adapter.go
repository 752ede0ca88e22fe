package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/order-management/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter wraps the catalog ServiceContainer for type-safe
// cross-module calls. It implements CatalogPort.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services.
// container is the catalog module's ServiceContainer, received via
// SetDependencyServiceContainer.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

// CreateProduct creates a new product via the create service.
func (a *catalogAdapter) CreateProduct(ctx context.Context, req *domain.CreateProductRequest) (*ProductResponse, error) {
	var resp ProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create service call failed: %w", err)
	}
	return &resp, nil
}

// GetProduct retrieves a product by ID via the get service.
func (a *catalogAdapter) GetProduct(ctx context.Context, id uint) (*ProductResponse, error) {
	req := GetProductRequest{ID: id}
	var resp ProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// ListProducts lists all products via the list service.
func (a *catalogAdapter) ListProducts(ctx context.Context) (*ListProductsResponse, error) {
	req := ListProductsRequest{}
	var resp ListProductsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}
