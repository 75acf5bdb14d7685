package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
	orderactivities "github.com/cams-platform/inventory-management/internal/platform/temporal/activities/orders"
)

// RunOrderPersistenceSequence executes the activities that reserve stock and
// persist an order. The retry policy is where lost optimistic locks get their
// second chance: the reservation engine itself never retries, but a Conflict
// here is transient and the activity is replayed against the advanced product
// version. Absent products, shortages, and malformed input are permanent and
// fail the sequence on the first attempt.
func RunOrderPersistenceSequence(ctx workflow.Context, input orderstypes.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "items", len(input.Items))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeProductNotFound,
				orderactivities.ErrTypeInsufficientStock,
				orderactivities.ErrTypeValidationFailed,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var created projection.Projection[*domain.Order]
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &created)
	if err != nil {
		logger.Error("order persistence sequence failed", "error", err)
		return nil, err
	}
	if created.Entity != nil {
		logger.Info("order persistence sequence completed", "orderId", created.Entity.ID)
	} else {
		logger.Info("order persistence sequence completed")
	}
	return &created, nil
}
