package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productspg "github.com/cams-platform/inventory-management/internal/domains/products/adapters/persistence/postgres"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the Postgres stock reservation engine and order store.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to a relational table.
type OrderRecord struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id"`
	Status    string            `gorm:"column:status;type:varchar(16);not null"`
	Items     []OrderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderItemRecord maps one order line. Items cascade with their order; they
// have no lifecycle of their own.
type OrderItemRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id"`
	OrderID   uuid.UUID `gorm:"type:uuid;column:order_id;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;column:product_id;index;not null"`
	Quantity  int32     `gorm:"column:quantity;not null"`
}

func (OrderItemRecord) TableName() string { return "order_items" }

// CreateOrder runs the whole reservation as one transaction. For each item in
// request order it loads the product, checks stock, and decrements through a
// version-guarded UPDATE; zero rows affected means a concurrent writer advanced
// the version, which surfaces as ErrConflict. The order and its items are
// inserted in the same transaction, so every failure path rolls the store back
// to the pre-call state.
func (r *Repository) CreateOrder(ctx context.Context, items []ports.ItemRequest) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}

	var created *projection.Projection[*domain.Order]
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := OrderRecord{ID: uuid.New(), Status: string(domain.StatusPending)}
		snapshots := make([]domain.ProductSnapshot, 0, len(items))

		for _, item := range items {
			var product productspg.ProductRecord
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w with id: %s", ports.ErrProductNotFound, item.ProductID)
				}
				return fmt.Errorf("loading product %s: %w", item.ProductID, err)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product: %s", ports.ErrInsufficientStock, product.Name)
			}

			// Compare-and-swap on the version column. A concurrent commit
			// between the read above and this UPDATE leaves zero rows matched.
			result := tx.Model(&productspg.ProductRecord{}).
				Where("id = ? AND version = ?", product.ID, product.Version).
				Updates(map[string]any{
					"stock":   gorm.Expr("stock - ?", item.Quantity),
					"version": gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return fmt.Errorf("decrementing stock for product %s: %w", product.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s at version %d", ports.ErrConflict, product.ID, product.Version)
			}

			order.Items = append(order.Items, OrderItemRecord{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
			})
			snapshots = append(snapshots, domain.ProductSnapshot{
				ID:    product.ID,
				Name:  product.Name,
				SKU:   product.SKU,
				Price: product.Price,
				Stock: product.Stock - item.Quantity,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		entity := &domain.Order{ID: order.ID, Status: domain.Status(order.Status)}
		for i, item := range order.Items {
			entity.Items = append(entity.Items, domain.OrderItem{
				ID:        item.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Product:   snapshots[i],
			})
		}
		created = &projection.Projection[*domain.Order]{
			Entity:   entity,
			Metadata: projection.Metadata{CreatedAt: order.CreatedAt, UpdatedAt: order.UpdatedAt},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID fetches an order with its items and current product snapshots.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return r.toProjection(ctx, &record)
}

// UpdateStatus overwrites the order status in its own single-record
// transaction. Absent orders return ErrNotFound; translating that into the
// silent-null contract is the application layer's business.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&OrderRecord{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) toProjection(ctx context.Context, record *OrderRecord) (*projection.Projection[*domain.Order], error) {
	productIDs := make([]uuid.UUID, 0, len(record.Items))
	for _, item := range record.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	snapshots := map[uuid.UUID]domain.ProductSnapshot{}
	if len(productIDs) > 0 {
		var products []productspg.ProductRecord
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return nil, fmt.Errorf("loading order products: %w", err)
		}
		for _, p := range products {
			snapshots[p.ID] = domain.ProductSnapshot{ID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price, Stock: p.Stock}
		}
	}

	entity := &domain.Order{ID: record.ID, Status: domain.Status(record.Status)}
	for _, item := range record.Items {
		entity.Items = append(entity.Items, domain.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   snapshots[item.ProductID],
		})
	}
	return &projection.Projection[*domain.Order]{
		Entity:   entity,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
