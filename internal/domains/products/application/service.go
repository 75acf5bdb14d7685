package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cams-platform/inventory-management/internal/domains/products/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// Service orchestrates the products bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the products service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProducts onboards a batch of submissions. Each submission whose SKU is
// blank or already stored is rejected with a message; the remaining ones are
// inserted in a single batch. Partial success is the normal outcome, so the
// rejections travel in the returned slice rather than the error.
//
// Duplicate SKUs inside the same batch are deliberately not detected here; only
// already-stored SKUs count as duplicates.
func (s *Service) CreateProducts(ctx context.Context, submissions []types.ProductSubmission) ([]*projection.Projection[*domain.Product], []string, error) {
	incomingSKUs := make([]string, 0, len(submissions))
	for _, submission := range submissions {
		if strings.TrimSpace(submission.SKU) != "" {
			incomingSKUs = append(incomingSKUs, submission.SKU)
		}
	}

	existing, err := s.repo.FindBySKUs(ctx, incomingSKUs)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up existing skus: %w", err)
	}
	existingSKUs := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		existingSKUs[p.Entity.SKU] = struct{}{}
	}

	var rejections []string
	accepted := make([]*domain.Product, 0, len(submissions))
	for _, submission := range submissions {
		sku := submission.SKU
		if _, dup := existingSKUs[sku]; dup || strings.TrimSpace(sku) == "" {
			rejections = append(rejections, fmt.Sprintf("Product with SKU %s already exists.", sku))
			continue
		}
		product, err := domain.NewProduct(submission.Name, sku, submission.Price, submission.Stock)
		if err != nil {
			rejections = append(rejections, err.Error())
			continue
		}
		accepted = append(accepted, product)
	}

	if len(accepted) == 0 {
		return nil, rejections, nil
	}
	created, err := s.repo.CreateBatch(ctx, accepted)
	if err != nil {
		return nil, nil, fmt.Errorf("inserting products: %w", err)
	}
	return created, rejections, nil
}

// LowStock returns every product with stock strictly below the threshold,
// preserving store iteration order.
func (s *Service) LowStock(ctx context.Context, threshold int32) ([]*projection.Projection[*domain.Product], error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	low := make([]*projection.Projection[*domain.Product], 0, len(products))
	for _, p := range products {
		if p.Entity.Stock < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

// ProductSummary flattens the items of every order (orders with a nil item list
// contribute nothing), groups them by product name, and sums price x quantity
// with exact decimal arithmetic.
func (s *Service) ProductSummary(_ context.Context, orders []types.OrderDetails) (map[string]decimal.Decimal, error) {
	return SummarizeOrderDetails(orders), nil
}

// SummarizeOrderDetails is the pure aggregation shared by the batch endpoint and
// the per-order summary. It never fails and returns an empty map when there is
// nothing to aggregate.
func SummarizeOrderDetails(orders []types.OrderDetails) map[string]decimal.Decimal {
	summary := map[string]decimal.Decimal{}
	for _, order := range orders {
		if order.Items == nil {
			continue
		}
		for _, item := range order.Items {
			amount := item.Product.Price.Mul(decimal.NewFromInt32(item.Quantity))
			if total, ok := summary[item.Product.Name]; ok {
				summary[item.Product.Name] = total.Add(amount)
			} else {
				summary[item.Product.Name] = amount
			}
		}
	}
	return summary
}

var _ ports.Service = (*Service)(nil)
