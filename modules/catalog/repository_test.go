package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domain "github.com/example/order-management/domain/catalog"
	"github.com/example/order-management/store"
	"gorm.io/gorm"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(db)
	})

	return db
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := &domain.Product{
		Name:        "Test Product",
		Description: "A test product",
		Price:       19.99,
		Stock:       10,
	}

	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == 0 {
		t.Error("expected store-assigned ID after create")
	}

	var found domain.Product
	if err := db.First(&found, p.ID).Error; err != nil {
		t.Fatalf("failed to find created product: %v", err)
	}
	if found.Name != p.Name {
		t.Errorf("expected name %q, got %q", p.Name, found.Name)
	}
	if found.Price != p.Price {
		t.Errorf("expected price %v, got %v", p.Price, found.Price)
	}
}

func TestRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "FindByID Test", Description: "desc", Price: 29.99, Stock: 50}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	t.Run("existing product", func(t *testing.T) {
		found, err := repo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.ID != p.ID {
			t.Errorf("expected ID %d, got %d", p.ID, found.ID)
		}
		if found.Stock != 50 {
			t.Errorf("expected stock 50, got %d", found.Stock)
		}
	})

	t.Run("non-existent product", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("lookup does not mutate state", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, p.ID); err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		var after domain.Product
		if err := db.First(&after, p.ID).Error; err != nil {
			t.Fatalf("failed to re-read product: %v", err)
		}
		if after.Stock != 50 {
			t.Errorf("read mutated stock: got %d, want 50", after.Stock)
		}
	})
}

func TestRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		products, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(products) != 0 {
			t.Errorf("expected 0 products, got %d", len(products))
		}
	})

	for i := 0; i < 3; i++ {
		p := &domain.Product{
			Name:  "Product " + string(rune('A'+i)),
			Price: float64(10 + i),
			Stock: i * 10,
		}
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("failed to create test product: %v", err)
		}
	}

	t.Run("with products", func(t *testing.T) {
		products, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(products) != 3 {
			t.Errorf("expected 3 products, got %d", len(products))
		}
	})
}

func TestRepository_DecrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Widget", Price: 9.99, Stock: 10}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	t.Run("sufficient stock", func(t *testing.T) {
		if err := repo.DecrementStock(ctx, p.ID, 4); err != nil {
			t.Fatalf("DecrementStock() error = %v", err)
		}
		found, err := repo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Stock != 6 {
			t.Errorf("expected stock 6, got %d", found.Stock)
		}
	})

	t.Run("exact remaining stock", func(t *testing.T) {
		if err := repo.DecrementStock(ctx, p.ID, 6); err != nil {
			t.Fatalf("DecrementStock() error = %v", err)
		}
		found, err := repo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Stock != 0 {
			t.Errorf("expected stock 0, got %d", found.Stock)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		err := repo.DecrementStock(ctx, p.ID, 1)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
		found, findErr := repo.FindByID(ctx, p.ID)
		if findErr != nil {
			t.Fatalf("FindByID() error = %v", findErr)
		}
		if found.Stock != 0 {
			t.Errorf("stock changed on failed decrement: got %d, want 0", found.Stock)
		}
	})
}
