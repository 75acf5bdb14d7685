package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products. Stock decrements are owned by the orders
// reservation engine; this port covers onboarding and read paths.
type Repository interface {
	CreateBatch(ctx context.Context, products []*domain.Product) ([]*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Product], error)
	FindBySKUs(ctx context.Context, skus []string) ([]*projection.Projection[*domain.Product], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
}
