package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersmemory "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/memory"
	ordersobs "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/cams-platform/inventory-management/internal/domains/orders/application"
	ordersports "github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productsmemory "github.com/cams-platform/inventory-management/internal/domains/products/adapters/memory"
	productsobs "github.com/cams-platform/inventory-management/internal/domains/products/adapters/observability"
	productspostgres "github.com/cams-platform/inventory-management/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/cams-platform/inventory-management/internal/domains/products/application"
	productsports "github.com/cams-platform/inventory-management/internal/domains/products/ports"
	platformmigrations "github.com/cams-platform/inventory-management/internal/platform/migrations"
	platformobservability "github.com/cams-platform/inventory-management/internal/platform/observability"
	platformpostgres "github.com/cams-platform/inventory-management/internal/platform/postgres"
	inventoryserver "github.com/cams-platform/inventory-management/internal/transport/http"
)

// Run boots the inventory HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "inventory-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	productRepo, orderRepo, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	productService := productsobs.New(
		productsapp.NewService(productRepo),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := inventoryserver.ApiHandleFunctions{
		ProductAPI: inventoryserver.NewProductAPI(productService),
		OrderAPI:   inventoryserver.NewOrderAPI(orderService, orderWorkflows),
	}

	router := inventoryserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Inventory API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Inventory API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories wires the Postgres-backed repositories when a DSN is
// configured and reachable, falling back to the shared in-memory stores
// otherwise. Both repositories must address the same product store, whichever
// flavor is chosen.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (productsports.Repository, ordersports.Repository, func()) {
	if cfg.PostgresDSN != "" {
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err == nil {
			if err := platformmigrations.Run(db); err != nil {
				logger.Error("failed to run migrations", slog.String("error", err.Error()))
			}
			sqlDB, err := db.DB()
			if err == nil {
				logger.Info("repositories configured with postgres")
				return productspostgres.NewRepository(db), orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
			}
			logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		} else {
			logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		}
	} else {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
	}
	productRepo := productsmemory.NewRepository()
	return productRepo, ordersmemory.NewRepository(productRepo), func() {}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
