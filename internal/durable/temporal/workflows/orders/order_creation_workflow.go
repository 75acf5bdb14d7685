package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/durable/temporal/sequences"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// OrderCreationWorkflowInput captures the payload required to place an order.
type OrderCreationWorkflowInput struct {
	Command orderstypes.CreateOrderInput
	TraceID string
}

// OrderCreationWorkflow orchestrates the activities needed to reserve stock and
// persist an order aggregate.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*projection.Projection[*domain.Order], error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "items", len(input.Command.Items))...)
	created, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if created != nil && created.Entity != nil {
		logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", created.Entity.ID)...)
	} else {
		logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return created, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
