package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/products/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// Service exposes the products use cases to adapters.
type Service interface {
	// CreateProducts onboards a batch, rejecting blank or already-stored SKUs.
	// Both the created list and the per-rejection messages are returned; the
	// error is reserved for store failures.
	CreateProducts(ctx context.Context, submissions []types.ProductSubmission) ([]*projection.Projection[*domain.Product], []string, error)
	// LowStock returns products whose stock is strictly below the threshold.
	LowStock(ctx context.Context, threshold int32) ([]*projection.Projection[*domain.Product], error)
	// ProductSummary aggregates total order value per product name from
	// externally supplied order details.
	ProductSummary(ctx context.Context, orders []types.OrderDetails) (map[string]decimal.Decimal, error)
}
