// Package order provides the domain entities for orders and their line items.
package order

import (
	"time"
)

// Status is the lifecycle state of an order. Order placement only ever
// produces StatusPending; fulfillment and cancellation transitions are
// handled elsewhere.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

// Order represents a placed order. An order owns its line items: deleting
// the order row cascades to them.
type Order struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	TotalPrice float64         `gorm:"not null" json:"total_price"`
	Status     Status          `gorm:"size:20;not null;default:pending" json:"status"`
	Lines      []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName returns the table name for the Order model.
func (Order) TableName() string {
	return "orders"
}

// OrderLineItem is one (product, quantity) entry within an order. The unit
// price is the product price snapshot taken when the order was validated, so
// a stored order stays self-describing after catalog price changes.
type OrderLineItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}

// TableName returns the table name for the OrderLineItem model.
func (OrderLineItem) TableName() string {
	return "order_line_items"
}

// ItemRequest is one requested (product, quantity) pair in a placement call.
type ItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}
