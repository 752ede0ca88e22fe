package api

import (
	"testing"

	"github.com/example/order-management/modules/catalog"
	"github.com/example/order-management/modules/order"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{order.CodeInvalidInput, fiber.StatusBadRequest},
		{order.CodeStockNotAvailable, fiber.StatusBadRequest},
		{catalog.CodeInvalidInput, fiber.StatusBadRequest},
		{order.CodeProductNotFound, fiber.StatusNotFound},
		{catalog.CodeNotFound, fiber.StatusNotFound},
		{order.CodeNotFound, fiber.StatusNotFound},
		{order.CodeConflict, fiber.StatusConflict},
		{order.CodeInternal, fiber.StatusInternalServerError},
		{"something_else", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForCode(tt.code))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "abc", "-1", "1.5"} {
		_, err := parseID(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
