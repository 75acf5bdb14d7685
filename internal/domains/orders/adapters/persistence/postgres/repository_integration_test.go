//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productspostgres "github.com/cams-platform/inventory-management/internal/domains/products/adapters/persistence/postgres"
	productsdomain "github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku string, stock int32) uuid.UUID {
	t.Helper()
	repo := productspostgres.NewRepository(db)
	p, err := productsdomain.NewProduct(name, sku, decimal.RequireFromString("2.50"), stock)
	require.NoError(t, err)
	created, err := repo.CreateBatch(context.Background(), []*productsdomain.Product{p})
	require.NoError(t, err)
	return created[0].Entity.ID
}

func productState(t *testing.T, db *gorm.DB, id uuid.UUID) (int32, int32) {
	t.Helper()
	var record productspostgres.ProductRecord
	require.NoError(t, db.First(&record, "id = ?", id).Error)
	return record.Stock, record.Version
}

func TestOrderRepository_CreateOrderDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, "Apple", "SKU-A", 10)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, []ports.ItemRequest{{ProductID: productID, Quantity: 4}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Entity.Status)
	require.Len(t, created.Entity.Items, 1)
	assert.Equal(t, int32(6), created.Entity.Items[0].Product.Stock)

	stock, version := productState(t, db, productID)
	assert.Equal(t, int32(6), stock)
	assert.Equal(t, int32(1), version)
}

func TestOrderRepository_FailureRollsBackEverything(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	appleID := seedProduct(t, db, "Apple", "SKU-A", 10)
	bananaID := seedProduct(t, db, "Banana", "SKU-B", 1)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.CreateOrder(ctx, []ports.ItemRequest{
		{ProductID: appleID, Quantity: 5},
		{ProductID: bananaID, Quantity: 2},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	// The apple decrement must not survive the rolled-back transaction.
	stock, version := productState(t, db, appleID)
	assert.Equal(t, int32(10), stock)
	assert.Equal(t, int32(0), version)

	var orderCount int64
	require.NoError(t, db.Model(&OrderRecord{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestOrderRepository_UnknownProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: uuid.New(), Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestOrderRepository_ConcurrentReservationsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, "Apple", "SKU-A", 5)
	repo := NewRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.CreateOrder(context.Background(), []ports.ItemRequest{{ProductID: productID, Quantity: 4}})
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
		assert.True(t,
			errors.Is(err, ports.ErrConflict) || errors.Is(err, ports.ErrInsufficientStock),
			"unexpected failure: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	stock, _ := productState(t, db, productID)
	assert.Equal(t, int32(1), stock)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, "Apple", "SKU-A", 5)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, []ports.ItemRequest{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, created.Entity.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Entity.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), domain.StatusCancelled)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestOrderRepository_GetByIDLoadsItems(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, "Apple", "SKU-A", 5)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, []ports.ItemRequest{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Entity.Items, 1)
	assert.Equal(t, "Apple", loaded.Entity.Items[0].Product.Name)
	assert.Equal(t, int32(2), loaded.Entity.Items[0].Quantity)
}
