package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// Service exposes the orders use cases to adapters.
type Service interface {
	// CreateOrder reserves stock for every requested item and persists the
	// order atomically.
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*projection.Projection[*domain.Order], error)
	// UpdateOrderStatus overwrites the status of an existing order. An absent
	// order yields (nil, nil): absence is silent here, not an error.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error)
	// ProductSummary aggregates the order's own items into per-product-name
	// totals. An unknown order yields an empty map.
	ProductSummary(ctx context.Context, orderID uuid.UUID) (map[string]decimal.Decimal, error)
}

// WorkflowOrchestrator starts order creation through a durable workflow when
// one is configured, or inline otherwise. Conflict retry policy lives behind
// this port, outside the reservation engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*projection.Projection[*domain.Order], error)
}
