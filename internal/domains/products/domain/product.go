package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrEmptySKU          = errors.New("product sku is required")
	ErrNegativeStock     = errors.New("product stock cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is the aggregate managed by the products bounded context. Version is
// the optimistic-concurrency token; every successful stock mutation advances it.
type Product struct {
	ID      uuid.UUID
	Name    string
	SKU     string
	Price   decimal.Decimal
	Stock   int32
	Version int32
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(name, sku string, price decimal.Decimal, stock int32) (*Product, error) {
	p := &Product{Price: price}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.AssignSKU(sku); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// AssignSKU sets the stock keeping unit. Uniqueness is enforced at the store level.
func (p *Product) AssignSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return ErrEmptySKU
	}
	p.SKU = sku
	return nil
}

// SetStock overwrites the stock quantity, rejecting negative values.
func (p *Product) SetStock(stock int32) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// DecrementStock reserves quantity units and advances the version token.
// The stock >= 0 invariant holds on every exit path.
func (p *Product) DecrementStock(quantity int32) error {
	if quantity <= 0 {
		return ErrNegativeStock
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	p.Version++
	return nil
}
