package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductRecord maps the product aggregate to a relational table. It is
// exported so the orders reservation engine can address the same table.
type ProductRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id"`
	Name      string          `gorm:"column:name;not null"`
	SKU       string          `gorm:"column:sku;not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock     int32           `gorm:"column:stock;not null"`
	Version   int32           `gorm:"column:version;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (ProductRecord) TableName() string { return "products" }

// CreateBatch inserts the accepted onboarding set in one statement. The unique
// SKU index backs the store-level uniqueness guarantee.
func (r *Repository) CreateBatch(ctx context.Context, products []*domain.Product) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	records := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, toRecord(p))
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	created := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		created = append(created, records[i].toProjection())
	}
	return created, nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// FindBySKUs returns the stored products matching any of the given SKUs.
func (r *Repository) FindBySKUs(ctx context.Context, skus []string) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(skus) == 0 {
		return []*projection.Projection[*domain.Product]{}, nil
	}
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Where("sku IN ?", skus).Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

// List returns all products in insertion order.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) ProductRecord {
	return ProductRecord{
		ID:      p.ID,
		Name:    p.Name,
		SKU:     p.SKU,
		Price:   p.Price,
		Stock:   p.Stock,
		Version: p.Version,
	}
}

func (r ProductRecord) toProjection() *projection.Projection[*domain.Product] {
	return &projection.Projection[*domain.Product]{
		Entity: &domain.Product{
			ID:      r.ID,
			Name:    r.Name,
			SKU:     r.SKU,
			Price:   r.Price,
			Stock:   r.Stock,
			Version: r.Version,
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func toProjections(records []ProductRecord) []*projection.Projection[*domain.Product] {
	list := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}
