// Package store opens the shared SQLite database handle used by the catalog
// and order modules. The handle is constructed once at startup, passed into
// the modules that need it, and closed during shutdown.
package store

import (
	"fmt"
	"log"
	"os"

	domcatalog "github.com/example/order-management/domain/catalog"
	domorder "github.com/example/order-management/domain/order"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path and runs auto-migrations for all
// entities. Foreign keys are enabled so order line items cascade with their
// order; the busy timeout keeps concurrent write transactions from failing
// immediately with SQLITE_BUSY.
func Open(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&domcatalog.Product{},
		&domorder.Order{},
		&domorder.OrderLineItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("[store] Database ready at %s", path)
	return db, nil
}

// Close closes the underlying sql.DB connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
