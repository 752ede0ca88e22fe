package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/order-management/modules/api"
	cachemod "github.com/example/order-management/modules/cache"
	"github.com/example/order-management/modules/catalog"
	"github.com/example/order-management/modules/notification"
	"github.com/example/order-management/modules/order"
	"github.com/example/order-management/store"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	dbPath := getEnv("DB_PATH", "./orders.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "catalog:")
	lowStockThreshold := getEnvInt("LOW_STOCK_THRESHOLD", 5)

	log.Println("=== Order Management Backend ===")
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Redis: %s", redisAddr)

	// The store handle is constructed once here and passed into the modules
	// that need it; it is closed during shutdown.
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	catalogModule := catalog.NewModule(db)
	orderModule := order.NewModule(db, catalogModule.GetRepository())
	notificationModule := notification.NewModule(lowStockThreshold)
	apiModule := api.NewModule(httpPort)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(cacheModule)
	app.Register(catalogModule)
	app.Register(orderModule)
	app.Register(notificationModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// The cache is only usable once its module connected to Redis.
	if c := cacheModule.GetCache(); c != nil {
		catalogModule.SetCache(c)
		apiModule.SetCache(c)
	}

	printStartupInfo(httpPort)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
			"store": func(_ context.Context) error {
				return store.Close(db)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  POST   /api/v1/products     - Add a product")
	log.Println("  GET    /api/v1/products     - List products (cached)")
	log.Println("  GET    /api/v1/products/:id - Get a product (cached)")
	log.Println("  POST   /api/v1/orders       - Place an order")
	log.Println("  GET    /api/v1/orders       - List orders")
	log.Println("  GET    /api/v1/orders/:id   - Get an order")
	log.Println("  GET    /api/v1/cache/stats  - Cache statistics")
	log.Println("  GET    /health              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
