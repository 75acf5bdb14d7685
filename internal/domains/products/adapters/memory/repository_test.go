package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/domains/products/ports"
)

func mustProduct(t *testing.T, name, sku string, stock int32) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, sku, decimal.RequireFromString("1.25"), stock)
	require.NoError(t, err)
	return p
}

func TestCreateBatch_AssignsIDsAndPreservesOrder(t *testing.T) {
	repo := NewRepository()

	created, err := repo.CreateBatch(context.Background(), []*domain.Product{
		mustProduct(t, "Apple", "SKU-A", 10),
		mustProduct(t, "Banana", "SKU-B", 20),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.NotEqual(t, created[0].Entity.ID, created[1].Entity.ID)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Apple", list[0].Entity.Name)
	require.Equal(t, "Banana", list[1].Entity.Name)
}

func TestCreateBatch_RejectsStoredSKU(t *testing.T) {
	repo := NewRepository()
	_, err := repo.CreateBatch(context.Background(), []*domain.Product{mustProduct(t, "Apple", "SKU-A", 10)})
	require.NoError(t, err)

	_, err = repo.CreateBatch(context.Background(), []*domain.Product{
		mustProduct(t, "Pear", "SKU-P", 5),
		mustProduct(t, "Apple Again", "SKU-A", 5),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "SKU-A")

	// The batch is all-or-nothing: the pear must not have been stored.
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestFindBySKUs(t *testing.T) {
	repo := NewRepository()
	_, err := repo.CreateBatch(context.Background(), []*domain.Product{
		mustProduct(t, "Apple", "SKU-A", 10),
		mustProduct(t, "Banana", "SKU-B", 20),
	})
	require.NoError(t, err)

	found, err := repo.FindBySKUs(context.Background(), []string{"SKU-B", "SKU-MISSING"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Banana", found[0].Entity.Name)
}

func TestCompareAndDecrement_GuardsVersionAndStock(t *testing.T) {
	repo := NewRepository()
	created, err := repo.CreateBatch(context.Background(), []*domain.Product{mustProduct(t, "Apple", "SKU-A", 5)})
	require.NoError(t, err)
	id := created[0].Entity.ID

	ok, err := repo.CompareAndDecrement(context.Background(), id, 3, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// Stale version loses the swap.
	ok, err = repo.CompareAndDecrement(context.Background(), id, 1, 0)
	require.NoError(t, err)
	require.False(t, ok)

	// Shortage fails the guard at the current version.
	ok, err = repo.CompareAndDecrement(context.Background(), id, 3, 1)
	require.NoError(t, err)
	require.False(t, ok)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int32(2), stored.Entity.Stock)
	require.Equal(t, int32(1), stored.Entity.Version)
}

func TestCompensateDecrement_RestoresStockAndVersion(t *testing.T) {
	repo := NewRepository()
	created, err := repo.CreateBatch(context.Background(), []*domain.Product{mustProduct(t, "Apple", "SKU-A", 5)})
	require.NoError(t, err)
	id := created[0].Entity.ID

	ok, err := repo.CompareAndDecrement(context.Background(), id, 2, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.CompensateDecrement(context.Background(), id, 2))

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int32(5), stored.Entity.Stock)
	require.Equal(t, int32(0), stored.Entity.Version)
}

func TestGetByID_Absent(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
