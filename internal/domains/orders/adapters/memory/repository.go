package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productsmemory "github.com/cams-platform/inventory-management/internal/domains/products/adapters/memory"
	productports "github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the in-memory reservation engine and order store. It shares a
// product store with the products context and upholds the same contract as the
// Postgres engine: compare-and-swap decrements, compensating re-increments in
// place of transaction rollback.
type Repository struct {
	mu       sync.RWMutex
	products *productsmemory.Repository
	orders   map[uuid.UUID]*record
}

type record struct {
	order    domain.Order
	metadata projection.Metadata
}

// NewRepository wires the order store around the shared product store.
func NewRepository(products *productsmemory.Repository) *Repository {
	return &Repository{products: products, orders: map[uuid.UUID]*record{}}
}

type appliedDecrement struct {
	productID uuid.UUID
	quantity  int32
}

// CreateOrder reserves every requested item in request order. On the first
// failure all prior decrements of this call are compensated, so the store
// reflects the pre-call state exactly.
func (r *Repository) CreateOrder(ctx context.Context, items []ports.ItemRequest) (*projection.Projection[*domain.Order], error) {
	var applied []appliedDecrement
	rollback := func() {
		for i := len(applied) - 1; i >= 0; i-- {
			_ = r.products.CompensateDecrement(ctx, applied[i].productID, applied[i].quantity)
		}
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := r.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, productports.ErrNotFound) {
			rollback()
			return nil, fmt.Errorf("%w with id: %s", ports.ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			rollback()
			return nil, err
		}
		if product.Entity.Stock < item.Quantity {
			rollback()
			return nil, fmt.Errorf("%w for product: %s", ports.ErrInsufficientStock, product.Entity.Name)
		}
		ok, err := r.products.CompareAndDecrement(ctx, item.ProductID, item.Quantity, product.Entity.Version)
		if err != nil {
			rollback()
			return nil, err
		}
		if !ok {
			// Another reservation advanced the version between the read and
			// the swap. The engine reports the conflict; it never retries.
			rollback()
			return nil, fmt.Errorf("%w: product %s at version %d", ports.ErrConflict, item.ProductID, product.Entity.Version)
		}
		applied = append(applied, appliedDecrement{productID: item.ProductID, quantity: item.Quantity})

		snapshot := *product.Entity
		snapshot.Stock -= item.Quantity
		snapshot.Version++
		orderItems = append(orderItems, domain.OrderItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product: domain.ProductSnapshot{
				ID:    snapshot.ID,
				Name:  snapshot.Name,
				SKU:   snapshot.SKU,
				Price: snapshot.Price,
				Stock: snapshot.Stock,
			},
		})
	}

	order := domain.NewOrder(orderItems)
	order.ID = uuid.New()

	now := time.Now()
	r.mu.Lock()
	r.orders[order.ID] = &record{order: *order, metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now}}
	r.mu.Unlock()
	return r.projectionFor(order.ID)
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Order], error) {
	return r.projectionFor(id)
}

func (r *Repository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error) {
	r.mu.Lock()
	rec, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, ports.ErrNotFound
	}
	if err := rec.order.UpdateStatus(status); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	rec.metadata.UpdatedAt = time.Now()
	r.mu.Unlock()
	return r.projectionFor(id)
}

func (r *Repository) projectionFor(id uuid.UUID) (*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := rec.order
	clone.Items = append([]domain.OrderItem{}, rec.order.Items...)
	return &projection.Projection[*domain.Order]{Entity: &clone, Metadata: rec.metadata}, nil
}
