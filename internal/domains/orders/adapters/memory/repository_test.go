package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productsmemory "github.com/cams-platform/inventory-management/internal/domains/products/adapters/memory"
	productsdomain "github.com/cams-platform/inventory-management/internal/domains/products/domain"
)

func seedProducts(t *testing.T, products *productsmemory.Repository, specs ...*productsdomain.Product) []uuid.UUID {
	t.Helper()
	created, err := products.CreateBatch(context.Background(), specs)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(created))
	for _, p := range created {
		ids = append(ids, p.Entity.ID)
	}
	return ids
}

func mustProduct(t *testing.T, name, sku string, stock int32) *productsdomain.Product {
	t.Helper()
	p, err := productsdomain.NewProduct(name, sku, decimal.RequireFromString("2.50"), stock)
	require.NoError(t, err)
	return p
}

func TestCreateOrder_ReservesStockAndSnapshotsProducts(t *testing.T) {
	products := productsmemory.NewRepository()
	ids := seedProducts(t, products, mustProduct(t, "Apple", "SKU-A", 10))
	repo := NewRepository(products)

	created, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: ids[0], Quantity: 3}})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, created.Entity.Status)
	require.Len(t, created.Entity.Items, 1)
	require.Equal(t, int32(7), created.Entity.Items[0].Product.Stock)

	stored, err := products.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	require.Equal(t, int32(7), stored.Entity.Stock)
	require.Equal(t, int32(1), stored.Entity.Version)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	repo := NewRepository(productsmemory.NewRepository())

	_, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: uuid.New(), Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestCreateOrder_InsufficientStockRollsBackEarlierDecrements(t *testing.T) {
	products := productsmemory.NewRepository()
	ids := seedProducts(t, products,
		mustProduct(t, "Apple", "SKU-A", 10),
		mustProduct(t, "Banana", "SKU-B", 1),
	)
	repo := NewRepository(products)

	_, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{
		{ProductID: ids[0], Quantity: 5},
		{ProductID: ids[1], Quantity: 2},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.ErrorContains(t, err, "Banana")

	// The first item's decrement must be compensated.
	apple, err := products.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	require.Equal(t, int32(10), apple.Entity.Stock)
	require.Equal(t, int32(0), apple.Entity.Version)
}

func TestCreateOrder_ConcurrentReservationsNeverOversell(t *testing.T) {
	products := productsmemory.NewRepository()
	ids := seedProducts(t, products, mustProduct(t, "Apple", "SKU-A", 5))
	repo := NewRepository(products)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: ids[0], Quantity: 4}})
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		failed++
		require.True(t,
			errors.Is(err, ports.ErrConflict) || errors.Is(err, ports.ErrInsufficientStock),
			"unexpected failure: %v", err)
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, failed)

	stored, err := products.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	require.Equal(t, int32(1), stored.Entity.Stock)
}

func TestUpdateStatus_OverwritesAndReturnsProjection(t *testing.T) {
	products := productsmemory.NewRepository()
	ids := seedProducts(t, products, mustProduct(t, "Apple", "SKU-A", 5))
	repo := NewRepository(products)

	created, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: ids[0], Quantity: 1}})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), created.Entity.ID, domain.StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, updated.Entity.Status)
}

func TestUpdateStatus_AbsentOrder(t *testing.T) {
	repo := NewRepository(productsmemory.NewRepository())

	_, err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusCompleted)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetByID_ReturnsOwnedItems(t *testing.T) {
	products := productsmemory.NewRepository()
	ids := seedProducts(t, products, mustProduct(t, "Apple", "SKU-A", 5))
	repo := NewRepository(products)

	created, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: ids[0], Quantity: 2}})
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Entity.Items, 1)
	require.Equal(t, "Apple", loaded.Entity.Items[0].Product.Name)
	require.Equal(t, int32(2), loaded.Entity.Items[0].Quantity)
}
