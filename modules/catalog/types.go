package catalog

import (
	"context"

	domain "github.com/example/order-management/domain/catalog"
)

// Error codes carried on service responses across the service container.
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "product_not_found"
	CodeInternal     = "internal"
)

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	ID uint `json:"id"`
}

// ProductResponse is the response for a single product. ErrorCode is empty
// on success.
type ProductResponse struct {
	Product   *domain.Product `json:"product,omitempty"`
	FromCache bool            `json:"from_cache,omitempty"`
	ErrorCode string          `json:"error_code,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ListProductsRequest is the request for listing products.
type ListProductsRequest struct{}

// ListProductsResponse is the response for listing products.
type ListProductsResponse struct {
	Products  []domain.Product `json:"products"`
	Total     int              `json:"total"`
	FromCache bool             `json:"from_cache,omitempty"`
	ErrorCode string           `json:"error_code,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// CatalogPort is the interface driving adapters use to reach the catalog.
type CatalogPort interface {
	CreateProduct(ctx context.Context, req *domain.CreateProductRequest) (*ProductResponse, error)
	GetProduct(ctx context.Context, id uint) (*ProductResponse, error)
	ListProducts(ctx context.Context) (*ListProductsResponse, error)
}
