package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	"github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

const tracerName = "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreateOrder reserves stock and persists the order with instrumentation. Each
// failure class gets its own counter so conflicts and shortages show up
// separately on dashboards.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder", attribute.Int("order.items.count", len(input.Items)))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordFailure(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.Int("items", len(input.Items)))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCreated(ctx)
		s.logInfo(ctx, "order created",
			slog.String("order.id", result.Entity.ID.String()),
			slog.String("status", string(result.Entity.Status)),
		)
	}
	return result, nil
}

// UpdateOrderStatus overwrites an order status. The silent-null case (order
// absent) is logged but not treated as a failure.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.Status) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateOrderStatus",
		attribute.String("order.id", orderID.String()),
		attribute.String("order.status", string(status)),
	)
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", orderID.String()), slog.String("status", string(status)))
	result, err := s.inner.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", orderID.String()))
	}
	if result == nil {
		span.SetAttributes(attribute.Bool("order.found", false))
		s.logInfo(ctx, "order not found for status update", slog.String("order.id", orderID.String()))
		return nil, nil
	}
	s.metrics.recordStatusUpdated(ctx, status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", orderID.String()), slog.String("status", string(result.Entity.Status)))
	return result, nil
}

// ProductSummary aggregates one order's items per product name.
func (s *Service) ProductSummary(ctx context.Context, orderID uuid.UUID) (map[string]decimal.Decimal, error) {
	ctx, span := s.startSpan(ctx, "Service.ProductSummary", attribute.String("order.id", orderID.String()))
	defer span.End()

	s.logInfo(ctx, "summarizing order", slog.String("order.id", orderID.String()))
	result, err := s.inner.ProductSummary(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize order", slog.String("order.id", orderID.String()))
	}
	span.SetAttributes(attribute.Int("order.summary.size", len(result)))
	s.logInfo(ctx, "order summarized", slog.String("order.id", orderID.String()), slog.Int("products", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated       metric.Int64Counter
	orderConflicts      metric.Int64Counter
	stockShortages      metric.Int64Counter
	orderStatusUpdated  metric.Int64Counter
	orderCreateFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	orderConflicts, _ := m.Int64Counter("orders.service.conflicts", metric.WithDescription("Number of reservations lost to concurrent writers"))
	stockShortages, _ := m.Int64Counter("orders.service.stock_shortages", metric.WithDescription("Number of reservations rejected for insufficient stock"))
	orderStatusUpdated, _ := m.Int64Counter("orders.service.status_updated", metric.WithDescription("Number of order status updates"))
	orderCreateFailures, _ := m.Int64Counter("orders.service.create_failures", metric.WithDescription("Number of failed order creations"))
	return serviceMetrics{
		ordersCreated:       ordersCreated,
		orderConflicts:      orderConflicts,
		stockShortages:      stockShortages,
		orderStatusUpdated:  orderStatusUpdated,
		orderCreateFailures: orderCreateFailures,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.ordersCreated, 1)
}

func (m serviceMetrics) recordStatusUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.orderStatusUpdated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordFailure(ctx context.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrConflict):
		addCounter(ctx, m.orderConflicts, 1)
	case errors.Is(err, ports.ErrInsufficientStock):
		addCounter(ctx, m.stockShortages, 1)
	}
	addCounter(ctx, m.orderCreateFailures, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
