package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/cams-platform/inventory-management/internal/domains/orders/application"
	orderstypes "github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	orderworkflows "github.com/cams-platform/inventory-management/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/cams-platform/inventory-management/internal/platform/temporal/activities/orders"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
}

// CreateOrder starts the Temporal workflow that reserves stock and persists the
// order, and blocks until it completes. Typed application errors coming back
// from the cluster are translated into the port's sentinel taxonomy so callers
// see the same errors on both orchestration paths.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-creation-%s", traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflow,
		orderworkflows.OrderCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var created projection.Projection[*domain.Order]
	if err := run.Get(ctx, &created); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &created, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CreateOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, input)
}

func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeProductNotFound:
		return fmt.Errorf("%w: %s", ports.ErrProductNotFound, appErr.Message())
	case orderactivities.ErrTypeInsufficientStock:
		return fmt.Errorf("%w: %s", ports.ErrInsufficientStock, appErr.Message())
	case orderactivities.ErrTypeConflict:
		return fmt.Errorf("%w: %s", ports.ErrConflict, appErr.Message())
	case orderactivities.ErrTypeValidationFailed:
		return fmt.Errorf("%w: %s", ordersapp.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanContext := span.SpanContext()
	if !spanContext.HasTraceID() {
		return ""
	}
	return spanContext.TraceID().String()
}
