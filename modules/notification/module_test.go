package notification

import (
	"context"
	"testing"
	"time"

	"github.com/example/order-management/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleOrderPlaced(t *testing.T) {
	m := NewModule(5)
	ctx := context.Background()

	event := events.OrderPlacedEvent{
		EventID:    "evt-1",
		OrderID:    1,
		TotalPrice: 39.98,
		Lines: []events.PlacedLine{
			{ProductID: 1, Quantity: 2, UnitPrice: 19.99, RemainingStock: 8},
		},
		PlacedAt: time.Now(),
	}

	require.NoError(t, m.handleOrderPlaced(ctx, event, nil))

	logs := m.GetNotifications()
	require.Len(t, logs, 1)
	assert.Equal(t, "order_placed", logs[0].Type)
}

func TestHandleOrderPlaced_LowStock(t *testing.T) {
	m := NewModule(5)
	ctx := context.Background()

	event := events.OrderPlacedEvent{
		EventID:    "evt-2",
		OrderID:    2,
		TotalPrice: 99.00,
		Lines: []events.PlacedLine{
			{ProductID: 1, Quantity: 1, UnitPrice: 19.99, RemainingStock: 9},
			{ProductID: 2, Quantity: 1, UnitPrice: 99.00, RemainingStock: 0},
		},
		PlacedAt: time.Now(),
	}

	require.NoError(t, m.handleOrderPlaced(ctx, event, nil))

	logs := m.GetNotifications()
	require.Len(t, logs, 2)
	assert.Equal(t, "order_placed", logs[0].Type)
	assert.Equal(t, "low_stock", logs[1].Type)
}

func TestHandleProductCreated(t *testing.T) {
	m := NewModule(5)

	event := events.ProductCreatedEvent{
		EventID:   "evt-3",
		ProductID: 7,
		Name:      "Widget",
		Stock:     10,
	}

	require.NoError(t, m.handleProductCreated(context.Background(), event, nil))

	logs := m.GetNotifications()
	require.Len(t, logs, 1)
	assert.Equal(t, "product_created", logs[0].Type)
}

func TestGetNotifications_ReturnsCopy(t *testing.T) {
	m := NewModule(5)
	m.logNotification("evt-4", "order_placed", "test")

	logs := m.GetNotifications()
	require.Len(t, logs, 1)
	logs[0].Type = "mutated"

	assert.Equal(t, "order_placed", m.GetNotifications()[0].Type)
}
