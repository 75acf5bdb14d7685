package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// OrderItemRequest is one inbound line of a create-order payload.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the create-order payload.
type CreateOrderRequest struct {
	OrderItems []OrderItemRequest `json:"orderItems" binding:"required,min=1,dive"`
}

// ProductSnapshot is the product state captured at reservation time.
type ProductSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

// OrderItem is the HTTP representation of one order line.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// Order is the HTTP representation of a stored order.
type Order struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	OrderItems []OrderItem `json:"orderItems"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt,omitempty"`
}

// ToCreateOrderInput converts the create-order payload into application input.
func ToCreateOrderInput(request CreateOrderRequest) types.CreateOrderInput {
	input := types.CreateOrderInput{Items: make([]types.OrderItemInput, 0, len(request.OrderItems))}
	for _, item := range request.OrderItems {
		input.Items = append(input.Items, types.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return input
}

// FromProjection maps a stored order with metadata into a transport Order.
func FromProjection(p *projection.Projection[*domain.Order]) Order {
	order := Order{
		ID:         p.Entity.ID.String(),
		Status:     string(p.Entity.Status),
		OrderItems: make([]OrderItem, 0, len(p.Entity.Items)),
		CreatedAt:  p.Metadata.CreatedAt,
		UpdatedAt:  p.Metadata.UpdatedAt,
	}
	for _, item := range p.Entity.Items {
		order.OrderItems = append(order.OrderItems, OrderItem{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Product: ProductSnapshot{
				ID:    item.Product.ID.String(),
				Name:  item.Product.Name,
				SKU:   item.Product.SKU,
				Price: item.Product.Price,
				Stock: item.Product.Stock,
			},
		})
	}
	return order
}
