package migrations

import (
	orderspostgres "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/persistence/postgres"
	productspostgres "github.com/cams-platform/inventory-management/internal/domains/products/adapters/persistence/postgres"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts: the products table with its
// unique SKU index and version column, the orders table, and the order items
// table with its cascade to orders.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productspostgres.ProductRecord{},
		&orderspostgres.OrderRecord{},
		&orderspostgres.OrderItemRecord{},
	)
}
