package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	productsapp "github.com/cams-platform/inventory-management/internal/domains/products/application"
	producttypes "github.com/cams-platform/inventory-management/internal/domains/products/application/types"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates the request shape and delegates the atomic reservation
// to the repository. The repository owns the consistency contract; this layer
// only rejects requests that are malformed before any store access.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}
	requests := make([]ports.ItemRequest, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, mapError(fmt.Errorf("%w: product %s", domain.ErrInvalidQuantity, item.ProductID))
		}
		requests = append(requests, ports.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	created, err := s.repo.CreateOrder(ctx, requests)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateOrderStatus overwrites the status of an existing order. An absent order
// is reported as (nil, nil) rather than an error; callers treat the nil
// projection as "nothing updated".
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error) {
	if !domain.IsValidStatus(status) {
		return nil, mapError(fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status))
	}
	updated, err := s.repo.UpdateStatus(ctx, orderID, status)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ProductSummary loads one order and aggregates its items with the shared
// summary rule. An unknown order contributes an empty map, which the transport
// reports as "no summary found".
func (s *Service) ProductSummary(ctx context.Context, orderID uuid.UUID) (map[string]decimal.Decimal, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if errors.Is(err, ports.ErrNotFound) {
		return map[string]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return productsapp.SummarizeOrderDetails([]producttypes.OrderDetails{toOrderDetails(order.Entity)}), nil
}

func toOrderDetails(order *domain.Order) producttypes.OrderDetails {
	details := producttypes.OrderDetails{
		ID:     order.ID.String(),
		Status: string(order.Status),
		Items:  make([]producttypes.OrderItemDetails, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		details.Items = append(details.Items, producttypes.OrderItemDetails{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Product: producttypes.ProductDetails{
				ID:    item.Product.ID.String(),
				Name:  item.Product.Name,
				SKU:   item.Product.SKU,
				Price: item.Product.Price,
				Stock: item.Product.Stock,
			},
		})
	}
	return details
}

var _ ports.Service = (*Service)(nil)
