package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter. Beyond the ports
// contract it exposes the compare-and-swap primitives the in-memory reservation
// engine needs, mirroring what the versioned UPDATE does in Postgres.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*record
	ordered  []uuid.UUID
}

type record struct {
	product  domain.Product
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*record{}}
}

func (r *Repository) CreateBatch(_ context.Context, products []*domain.Product) ([]*projection.Projection[*domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The unique SKU index is enforced up front so the batch stays all-or-nothing.
	taken := map[string]struct{}{}
	for _, rec := range r.products {
		taken[rec.product.SKU] = struct{}{}
	}
	for _, p := range products {
		if _, exists := taken[p.SKU]; exists {
			return nil, fmt.Errorf("duplicate key value violates unique sku constraint: %s", p.SKU)
		}
		taken[p.SKU] = struct{}{}
	}

	now := time.Now()
	created := make([]*projection.Projection[*domain.Product], 0, len(products))
	for _, p := range products {
		clone := *p
		if clone.ID == uuid.Nil {
			clone.ID = uuid.New()
		}
		rec := &record{product: clone, metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now}}
		r.products[clone.ID] = rec
		r.ordered = append(r.ordered, clone.ID)
		created = append(created, rec.projection())
	}
	return created, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return rec.projection(), nil
}

func (r *Repository) FindBySKUs(_ context.Context, skus []string) ([]*projection.Projection[*domain.Product], error) {
	wanted := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		wanted[sku] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found []*projection.Projection[*domain.Product]
	for _, id := range r.ordered {
		rec := r.products[id]
		if _, ok := wanted[rec.product.SKU]; ok {
			found = append(found, rec.projection())
		}
	}
	return found, nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.ordered))
	for _, id := range r.ordered {
		list = append(list, r.products[id].projection())
	}
	return list, nil
}

// CompareAndDecrement atomically decrements stock when the version token still
// matches and stock suffices, advancing the version. A false return means the
// guard failed; the caller re-reads to tell a stale version from a shortage.
func (r *Repository) CompareAndDecrement(_ context.Context, id uuid.UUID, quantity, expectedVersion int32) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return false, ports.ErrNotFound
	}
	if rec.product.Version != expectedVersion || rec.product.Stock < quantity {
		return false, nil
	}
	rec.product.Stock -= quantity
	rec.product.Version++
	rec.metadata.UpdatedAt = time.Now()
	return true, nil
}

// CompensateDecrement undoes a prior CompareAndDecrement, restoring stock and
// rolling the version token back. It stands in for transaction rollback.
func (r *Repository) CompensateDecrement(_ context.Context, id uuid.UUID, quantity int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.product.Stock += quantity
	rec.product.Version--
	return nil
}

func (rec *record) projection() *projection.Projection[*domain.Product] {
	clone := rec.product
	return &projection.Projection[*domain.Product]{Entity: &clone, Metadata: rec.metadata}
}
