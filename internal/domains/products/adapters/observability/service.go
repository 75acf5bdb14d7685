package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/cams-platform/inventory-management/internal/domains/products/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/products/domain"
	"github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

const tracerName = "github.com/cams-platform/inventory-management/internal/domains/products/adapters/observability/service"

// Service decorates the products application port with tracing, logging, and metrics.
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

// CreateProducts onboards a batch of submissions with instrumentation.
func (s *Service) CreateProducts(ctx context.Context, submissions []types.ProductSubmission) ([]*projection.Projection[*domain.Product], []string, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateProducts", attribute.Int("product.batch.size", len(submissions)))
	defer span.End()

	s.logInfo(ctx, "creating products", slog.Int("batch.size", len(submissions)))
	created, rejections, err := s.inner.CreateProducts(ctx, submissions)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to create products", slog.Int("batch.size", len(submissions)))
	}
	span.SetAttributes(
		attribute.Int("product.created.count", len(created)),
		attribute.Int("product.rejected.count", len(rejections)),
	)
	s.metrics.recordCreated(ctx, int64(len(created)))
	s.metrics.recordRejected(ctx, int64(len(rejections)))
	s.logInfo(ctx, "products created", slog.Int("created", len(created)), slog.Int("rejected", len(rejections)))
	return created, rejections, nil
}

// LowStock lists products below the threshold.
func (s *Service) LowStock(ctx context.Context, threshold int32) ([]*projection.Projection[*domain.Product], error) {
	ctx, span := s.startSpan(ctx, "Service.LowStock", attribute.Int("product.stock.threshold", int(threshold)))
	defer span.End()

	s.logInfo(ctx, "finding low-stock products", slog.Int("threshold", int(threshold)))
	result, err := s.inner.LowStock(ctx, threshold)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find low-stock products", slog.Int("threshold", int(threshold)))
	}
	span.SetAttributes(attribute.Int("product.result.count", len(result)))
	s.logInfo(ctx, "found low-stock products", slog.Int("count", len(result)))
	return result, nil
}

// ProductSummary aggregates submitted order details per product name.
func (s *Service) ProductSummary(ctx context.Context, orders []types.OrderDetails) (map[string]decimal.Decimal, error) {
	ctx, span := s.startSpan(ctx, "Service.ProductSummary", attribute.Int("order.batch.size", len(orders)))
	defer span.End()

	s.logInfo(ctx, "summarizing orders", slog.Int("orders", len(orders)))
	result, err := s.inner.ProductSummary(ctx, orders)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize orders", slog.Int("orders", len(orders)))
	}
	span.SetAttributes(attribute.Int("product.summary.size", len(result)))
	s.logInfo(ctx, "orders summarized", slog.Int("products", len(result)))
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
	productsCreated  metric.Int64Counter
	productsRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("products.service.created", metric.WithDescription("Number of products onboarded"))
	productsRejected, _ := m.Int64Counter("products.service.rejected", metric.WithDescription("Number of product submissions rejected"))
	return serviceMetrics{
		productsCreated:  productsCreated,
		productsRejected: productsRejected,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, count int64) {
	addCounter(ctx, m.productsCreated, count)
}

func (m serviceMetrics) recordRejected(ctx context.Context, count int64) {
	addCounter(ctx, m.productsRejected, count)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
