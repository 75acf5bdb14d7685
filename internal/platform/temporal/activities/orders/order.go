package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/cams-platform/inventory-management/internal/domains/orders/application"
	orderstypes "github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	ordersports "github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

const (
	// PlaceOrderActivityName runs the stock reservation and order persistence.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// Application error types carried across the activity boundary so retry
	// policies can tell permanent failures from transient ones.
	ErrTypeProductNotFound   = "ProductNotFound"
	ErrTypeInsufficientStock = "InsufficientStock"
	ErrTypeValidationFailed  = "ValidationFailed"
	ErrTypeConflict          = "Conflict"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder reserves stock and persists the order, classifying failures into
// typed application errors. Absent products, shortages, and malformed input are
// permanent; a lost optimistic lock keeps its plain shape so the retry policy
// may replay the reservation against the advanced version.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized")
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "items", len(input.Items))
	created, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "error", err)
		return nil, classifyError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", created.Entity.ID)
	return created, nil
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, ordersports.ErrProductNotFound):
		return temporal.NewApplicationError(err.Error(), ErrTypeProductNotFound)
	case errors.Is(err, ordersports.ErrInsufficientStock):
		return temporal.NewApplicationError(err.Error(), ErrTypeInsufficientStock)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return temporal.NewApplicationError(err.Error(), ErrTypeValidationFailed)
	case errors.Is(err, ordersports.ErrConflict):
		return temporal.NewApplicationError(err.Error(), ErrTypeConflict)
	default:
		return err
	}
}
