package order

import (
	"context"
	"errors"
	"fmt"

	domcatalog "github.com/example/order-management/domain/catalog"
	domain "github.com/example/order-management/domain/order"
	"github.com/example/order-management/modules/catalog"
	"gorm.io/gorm"
)

// Engine places orders. It is the single implementation of the placement
// transaction: every presentation adapter goes through it, and all of its
// store access happens inside one transaction, so a failure at any point
// leaves the store exactly as it was before the call.
type Engine struct {
	db       *gorm.DB
	products *catalog.Repository
	orders   *Repository
}

// StockLevel reports a product's stock after an order committed.
type StockLevel struct {
	ProductID uint
	Remaining int
}

// NewEngine creates a new order transaction engine on the shared store
// handle.
func NewEngine(db *gorm.DB, products *catalog.Repository, orders *Repository) *Engine {
	return &Engine{
		db:       db,
		products: products,
		orders:   orders,
	}
}

// PlaceOrder atomically validates the requested items, decrements stock,
// computes the total price, and persists the order with its line items.
//
// Every item is validated against the stock snapshot before any mutation;
// the total is computed from that same snapshot. Failures are typed:
// ErrInvalidInput (before any store access), ProductNotFoundError,
// StockNotAvailableError, or ErrConflict for transient lock contention.
// On success the returned stock levels reflect the committed decrements.
func (e *Engine) PlaceOrder(ctx context.Context, items []domain.ItemRequest) (*domain.Order, []StockLevel, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: item %d quantity must be a positive integer", ErrInvalidInput, i)
		}
	}

	var created domain.Order
	levels := make([]StockLevel, 0, len(items))

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := e.products.WithTx(tx)

		// Resolve and validate every item, in input order, before touching
		// any stock. The price snapshot read here is what the total and the
		// stored line items use.
		resolved := make([]*domcatalog.Product, 0, len(items))
		var total float64
		for _, item := range items {
			p, err := products.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return err
			}
			if p.Stock < item.Quantity {
				return &StockNotAvailableError{ProductID: item.ProductID}
			}
			total += p.Price * float64(item.Quantity)
			resolved = append(resolved, p)
		}

		// Decrement guarded by the stock precondition. Zero rows affected
		// means another transaction took the stock between our read and
		// write; the whole placement rolls back.
		for _, item := range items {
			if err := products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, catalog.ErrInsufficientStock) {
					return &StockNotAvailableError{ProductID: item.ProductID}
				}
				return err
			}
		}

		// Remaining stock is the snapshot minus everything this order took
		// from the product so far, so duplicate product lines accumulate.
		lines := make([]domain.OrderLineItem, 0, len(items))
		consumed := make(map[uint]int, len(items))
		for i, item := range items {
			lines = append(lines, domain.OrderLineItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: resolved[i].Price,
			})
			consumed[item.ProductID] += item.Quantity
			levels = append(levels, StockLevel{
				ProductID: item.ProductID,
				Remaining: resolved[i].Stock - consumed[item.ProductID],
			})
		}

		created = domain.Order{
			TotalPrice: total,
			Status:     domain.StatusPending,
			Lines:      lines,
		}
		return e.orders.WithTx(tx).Create(ctx, &created)
	})
	if err != nil {
		if isLockConflict(err) {
			return nil, nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, nil, err
	}

	return &created, levels, nil
}
