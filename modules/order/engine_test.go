package order

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	domcatalog "github.com/example/order-management/domain/catalog"
	domain "github.com/example/order-management/domain/order"
	"github.com/example/order-management/modules/catalog"
	"github.com/example/order-management/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engineTest struct {
	db       *gorm.DB
	products *catalog.Repository
	orders   *Repository
	engine   *Engine
}

func setupEngine(t *testing.T) *engineTest {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(db)
	})

	products := catalog.NewRepository(db)
	orders := NewRepository(db)
	return &engineTest{
		db:       db,
		products: products,
		orders:   orders,
		engine:   NewEngine(db, products, orders),
	}
}

func (et *engineTest) createProduct(t *testing.T, name string, price float64, stock int) *domcatalog.Product {
	t.Helper()
	p := &domcatalog.Product{Name: name, Description: "test", Price: price, Stock: stock}
	require.NoError(t, et.db.Create(p).Error)
	return p
}

func (et *engineTest) productStock(t *testing.T, id uint) int {
	t.Helper()
	var p domcatalog.Product
	require.NoError(t, et.db.First(&p, id).Error)
	return p.Stock
}

func (et *engineTest) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, et.db.Model(&domain.Order{}).Count(&count).Error)
	return count
}

func (et *engineTest) lineCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, et.db.Model(&domain.OrderLineItem{}).Count(&count).Error)
	return count
}

func TestEngine_PlaceOrder(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p := et.createProduct(t, "Widget", 19.99, 10)

	created, levels, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.InDelta(t, 39.98, created.TotalPrice, 0.0001)
	require.Len(t, created.Lines, 1)
	assert.Equal(t, p.ID, created.Lines[0].ProductID)
	assert.Equal(t, 2, created.Lines[0].Quantity)
	assert.InDelta(t, 19.99, created.Lines[0].UnitPrice, 0.0001)

	require.Len(t, levels, 1)
	assert.Equal(t, 8, levels[0].Remaining)
	assert.Equal(t, 8, et.productStock(t, p.ID))

	// The persisted order carries its line items.
	found, err := et.orders.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 39.98, found.TotalPrice, 0.0001)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, created.ID, found.Lines[0].OrderID)
}

func TestEngine_PlaceOrder_MultipleItems(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p1 := et.createProduct(t, "Widget", 19.99, 10)
	p2 := et.createProduct(t, "Gadget", 5.50, 4)

	created, _, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p1.ID, Quantity: 1},
		{ProductID: p2.ID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.InDelta(t, 19.99+3*5.50, created.TotalPrice, 0.0001)
	require.Len(t, created.Lines, 2)
	assert.Equal(t, 9, et.productStock(t, p1.ID))
	assert.Equal(t, 1, et.productStock(t, p2.ID))
}

func TestEngine_PlaceOrder_InvalidInput(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p := et.createProduct(t, "Widget", 19.99, 10)

	tests := []struct {
		name  string
		items []domain.ItemRequest
	}{
		{"empty items", nil},
		{"zero quantity", []domain.ItemRequest{{ProductID: p.ID, Quantity: 0}}},
		{"negative quantity", []domain.ItemRequest{{ProductID: p.ID, Quantity: -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := et.engine.PlaceOrder(ctx, tt.items)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Equal(t, 10, et.productStock(t, p.ID))
	assert.Zero(t, et.orderCount(t))
}

func TestEngine_PlaceOrder_ProductNotFound(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p := et.createProduct(t, "Widget", 19.99, 10)

	_, _, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: 99999, Quantity: 1},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(99999), notFound.ProductID)

	// All-or-nothing: the valid item's stock is untouched.
	assert.Equal(t, 10, et.productStock(t, p.ID))
	assert.Zero(t, et.orderCount(t))
	assert.Zero(t, et.lineCount(t))
}

func TestEngine_PlaceOrder_StockNotAvailable(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p1 := et.createProduct(t, "Widget", 19.99, 10)
	p2 := et.createProduct(t, "Rare", 99.00, 1)

	_, _, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 5},
	})

	var noStock *StockNotAvailableError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, p2.ID, noStock.ProductID)

	// No stock changes anywhere, including the item that would have
	// succeeded on its own.
	assert.Equal(t, 10, et.productStock(t, p1.ID))
	assert.Equal(t, 1, et.productStock(t, p2.ID))
	assert.Zero(t, et.orderCount(t))
	assert.Zero(t, et.lineCount(t))
}

func TestEngine_PlaceOrder_DuplicateItems(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p := et.createProduct(t, "Widget", 19.99, 10)

	created, levels, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p.ID, Quantity: 4},
		{ProductID: p.ID, Quantity: 4},
	})
	require.NoError(t, err)

	assert.InDelta(t, 8*19.99, created.TotalPrice, 0.0001)
	require.Len(t, created.Lines, 2)

	// Remaining stock accumulates across duplicate lines of one product.
	require.Len(t, levels, 2)
	assert.Equal(t, 6, levels[0].Remaining)
	assert.Equal(t, 2, levels[1].Remaining)
	assert.Equal(t, 2, et.productStock(t, p.ID))
}

func TestEngine_PlaceOrder_DuplicateItemsExceedStock(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	// Each line passes validation against the snapshot, but the guarded
	// decrements are cumulative, so the second one fails and everything
	// rolls back.
	p := et.createProduct(t, "Widget", 19.99, 3)

	_, _, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: p.ID, Quantity: 2},
	})

	var noStock *StockNotAvailableError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, 3, et.productStock(t, p.ID))
	assert.Zero(t, et.orderCount(t))
}

func TestEngine_PlaceOrder_CancelledContext(t *testing.T) {
	et := setupEngine(t)

	p := et.createProduct(t, "Widget", 19.99, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := et.engine.PlaceOrder(ctx, []domain.ItemRequest{
		{ProductID: p.ID, Quantity: 1},
	})
	require.Error(t, err)

	assert.Equal(t, 10, et.productStock(t, p.ID))
	assert.Zero(t, et.orderCount(t))
}

func TestEngine_PlaceOrder_ConcurrentLastUnit(t *testing.T) {
	et := setupEngine(t)
	ctx := context.Background()

	p := et.createProduct(t, "Last One", 42.00, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = et.engine.PlaceOrder(ctx, []domain.ItemRequest{
				{ProductID: p.ID, Quantity: 1},
			})
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		failures++
		// The loser sees either the business rejection or a transient
		// conflict, never a silent partial commit.
		var noStock *StockNotAvailableError
		if !assert.True(t, errors.As(err, &noStock) || errors.Is(err, ErrConflict),
			"unexpected error kind: %v", err) {
			t.Logf("loser error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, et.productStock(t, p.ID))
	assert.EqualValues(t, 1, et.orderCount(t))
}
