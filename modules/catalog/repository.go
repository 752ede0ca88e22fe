package catalog

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/order-management/domain/catalog"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock decrement would drop the
// stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository provides database access to product records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository scoped to the given transaction handle.
// Stock mutations that must commit together with other writes go through
// the transaction-scoped repository.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create saves a new product.
func (r *Repository) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// FindAll retrieves all products ordered by ID.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// DecrementStock subtracts quantity from the product's stock, guarded by a
// stock >= quantity precondition so stock can never go negative. Zero rows
// affected means the precondition failed; callers verify the product exists
// before calling, so that is reported as insufficient stock.
func (r *Repository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
