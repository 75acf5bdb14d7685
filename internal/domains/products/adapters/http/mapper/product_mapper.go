package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/products/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// ProductSubmission captures one inbound entry of an onboarding batch. The
// payload is a bare JSON array of these. Blank names and SKUs are not rejected
// at the binding edge: they surface as per-item rejection messages, keeping the
// batch's partial-success contract.
type ProductSubmission struct {
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

// Product is the HTTP representation of a stored product.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Version   int32           `json:"version"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt,omitempty"`
}

// OrderDetailsRequest is one externally supplied order for summary aggregation.
// The item list is deliberately unvalidated: a nil list is a legal input that
// contributes nothing to the summary.
type OrderDetailsRequest struct {
	ID     string                    `json:"id"`
	Status string                    `json:"status"`
	Items  []OrderItemDetailsRequest `json:"orderItems"`
}

// OrderItemDetailsRequest pairs a quantity with its product snapshot.
type OrderItemDetailsRequest struct {
	ProductID string                `json:"productId"`
	Quantity  int32                 `json:"quantity"`
	Product   ProductDetailsRequest `json:"product"`
}

// ProductDetailsRequest is the inbound product snapshot inside order details.
type ProductDetailsRequest struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

// ToSubmissions converts the onboarding payload into application inputs.
func ToSubmissions(payload []ProductSubmission) []types.ProductSubmission {
	submissions := make([]types.ProductSubmission, 0, len(payload))
	for _, p := range payload {
		submissions = append(submissions, types.ProductSubmission{
			Name:  p.Name,
			SKU:   p.SKU,
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	return submissions
}

// ToOrderDetails converts the summary payload into application inputs,
// preserving nil item lists.
func ToOrderDetails(requests []OrderDetailsRequest) []types.OrderDetails {
	orders := make([]types.OrderDetails, 0, len(requests))
	for _, r := range requests {
		order := types.OrderDetails{ID: r.ID, Status: r.Status}
		if r.Items != nil {
			order.Items = make([]types.OrderItemDetails, 0, len(r.Items))
			for _, item := range r.Items {
				order.Items = append(order.Items, types.OrderItemDetails{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Product: types.ProductDetails{
						ID:    item.Product.ID,
						Name:  item.Product.Name,
						SKU:   item.Product.SKU,
						Price: item.Product.Price,
						Stock: item.Product.Stock,
					},
				})
			}
		}
		orders = append(orders, order)
	}
	return orders
}

// FromProjection maps a stored product with metadata into a transport Product.
func FromProjection(p *projection.Projection[*domain.Product]) Product {
	return Product{
		ID:        p.Entity.ID.String(),
		Name:      p.Entity.Name,
		SKU:       p.Entity.SKU,
		Price:     p.Entity.Price,
		Stock:     p.Entity.Stock,
		Version:   p.Entity.Version,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps stored products into transport representations.
func FromProjectionList(list []*projection.Projection[*domain.Product]) []Product {
	result := make([]Product, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
