package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var (
	// ErrNotFound signals an absent order.
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound signals a reservation referencing an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a requested quantity above the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflict signals that a concurrent transaction advanced a product
	// version between the stock check and the decrement. Retrying is the
	// caller's decision, never the engine's.
	ErrConflict = errors.New("concurrent stock update conflict")
)

// ItemRequest is one requested (product, quantity) pair of an order.
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int32
}

// Repository persists orders. CreateOrder is the stock reservation engine: the
// whole call is one atomic unit: per-item stock validation, version-checked
// decrements, and the order insert commit or roll back together. No partial
// order is ever observable, and no two concurrent reservations can decrement
// from the same stale stock value.
type Repository interface {
	CreateOrder(ctx context.Context, items []ItemRequest) (*projection.Projection[*domain.Order], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Order], error)
	// UpdateStatus overwrites the status of a stored order in its own
	// single-record transaction. Returns ErrNotFound when the order is absent.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error)
}
