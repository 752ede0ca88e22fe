// Package events defines the typed domain events exchanged over the mono
// event bus.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// PlacedLine is one line of a placed order as carried on the event.
type PlacedLine struct {
	ProductID      uint    `json:"product_id"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	RemainingStock int     `json:"remaining_stock"`
}

// OrderPlacedEvent is emitted after an order has been committed.
type OrderPlacedEvent struct {
	EventID    string       `json:"event_id"`
	OrderID    uint         `json:"order_id"`
	TotalPrice float64      `json:"total_price"`
	Lines      []PlacedLine `json:"lines"`
	PlacedAt   time.Time    `json:"placed_at"`
}

// OrderPlacedV1 is the typed event definition for order placement.
// Subject: events.order.v1.order-placed
var OrderPlacedV1 = helper.EventDefinition[OrderPlacedEvent](
	"order", "OrderPlaced", "v1",
)

// ProductCreatedEvent is emitted when a product is added to the catalog.
type ProductCreatedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductCreatedV1 is the typed event definition for product creation.
// Subject: events.catalog.v1.product-created
var ProductCreatedV1 = helper.EventDefinition[ProductCreatedEvent](
	"catalog", "ProductCreated", "v1",
)
