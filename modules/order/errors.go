package order

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrInvalidInput is returned for malformed order requests, before any store
// access.
var ErrInvalidInput = errors.New("invalid order input")

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrConflict is returned when a concurrent transaction prevented the order
// from committing. The store was left untouched; the caller may retry.
var ErrConflict = errors.New("conflicting concurrent update")

// ProductNotFoundError reports a requested product that does not exist.
// The whole placement fails; no stock changes.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// StockNotAvailableError reports a requested quantity exceeding the current
// stock of a specific product. The whole placement fails; no stock changes.
type StockNotAvailableError struct {
	ProductID uint
}

func (e *StockNotAvailableError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// isLockConflict reports whether err is a SQLite busy/locked failure, i.e. a
// transient conflict rather than a business-rule rejection.
func isLockConflict(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}
