package api

import (
	"strconv"

	domcatalog "github.com/example/order-management/domain/catalog"
	domorder "github.com/example/order-management/domain/order"
	"github.com/example/order-management/modules/order"
	"github.com/gofiber/fiber/v2"
)

// statusForCode translates service error codes into HTTP status codes.
// Business-rule rejections are 400, missing references 404, transient
// conflicts 409, everything else 500.
func statusForCode(code string) int {
	switch code {
	case order.CodeInvalidInput, order.CodeStockNotAvailable:
		return fiber.StatusBadRequest
	case order.CodeProductNotFound, order.CodeNotFound:
		return fiber.StatusNotFound
	case order.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func serviceError(c *fiber.Ctx, code, message string) error {
	return c.Status(statusForCode(code)).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api/v1")

	products := api.Group("/products")
	products.Post("/", m.createProduct)
	products.Get("/", m.listProducts)
	products.Get("/:id", m.getProduct)

	orders := api.Group("/orders")
	orders.Post("/", m.placeOrder)
	orders.Get("/", m.listOrders)
	orders.Get("/:id", m.getOrder)

	api.Get("/cache/stats", m.cacheStats)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createProduct handles POST /api/v1/products.
func (m *Module) createProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.catalogPort.CreateProduct(c.Context(), &domcatalog.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "create_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.Status(fiber.StatusCreated).JSON(resp.Product)
}

// listProducts handles GET /api/v1/products.
func (m *Module) listProducts(c *fiber.Ctx) error {
	resp, err := m.catalogPort.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.JSON(fiber.Map{
		"products":   resp.Products,
		"total":      resp.Total,
		"from_cache": resp.FromCache,
	})
}

// getProduct handles GET /api/v1/products/:id.
func (m *Module) getProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid product ID",
		})
	}

	resp, err := m.catalogPort.GetProduct(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "get_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.JSON(resp.Product)
}

// placeOrder handles POST /api/v1/orders.
func (m *Module) placeOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	items := make([]domorder.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domorder.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := m.orderPort.PlaceOrder(c.Context(), &order.PlaceOrderRequest{Items: items})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "place_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.Status(fiber.StatusCreated).JSON(resp.Order)
}

// listOrders handles GET /api/v1/orders.
func (m *Module) listOrders(c *fiber.Ctx) error {
	resp, err := m.orderPort.ListOrders(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.JSON(fiber.Map{
		"orders": resp.Orders,
		"total":  resp.Total,
	})
}

// getOrder handles GET /api/v1/orders/:id.
func (m *Module) getOrder(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid order ID",
		})
	}

	resp, err := m.orderPort.GetOrder(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "get_failed",
			Message: err.Error(),
		})
	}
	if resp.ErrorCode != "" {
		return serviceError(c, resp.ErrorCode, resp.Error)
	}

	return c.JSON(resp.Order)
}

// cacheStats handles GET /api/v1/cache/stats.
func (m *Module) cacheStats(c *fiber.Ctx) error {
	if m.cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "cache_unavailable",
			Message: "Cache is not configured",
		})
	}
	return c.JSON(m.cache.GetStats())
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
