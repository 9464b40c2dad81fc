package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	assignments       metric.Int64Counter
	unassignments     metric.Int64Counter
	roleReplacements  metric.Int64Counter
	memberWrites      metric.Int64Counter
	availabilityFlips metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "roster"
	}
	meter := provider.Meter(name)

	assignments, err := meter.Int64Counter("roster_assignments_total")
	if err != nil {
		return nil, err
	}
	unassignments, err := meter.Int64Counter("roster_unassignments_total")
	if err != nil {
		return nil, err
	}
	roleReplacements, err := meter.Int64Counter("roster_role_replacements_total")
	if err != nil {
		return nil, err
	}
	memberWrites, err := meter.Int64Counter("roster_member_writes_total")
	if err != nil {
		return nil, err
	}
	availabilityFlips, err := meter.Int64Counter("roster_unavailability_writes_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		assignments:       assignments,
		unassignments:     unassignments,
		roleReplacements:  roleReplacements,
		memberWrites:      memberWrites,
		availabilityFlips: availabilityFlips,
	}, nil
}

// RecordAssignment increments assignment counts for a role.
func (m *Metrics) RecordAssignment(ctx context.Context, role string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("role", strings.TrimSpace(role)))
	m.assignments.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordUnassignment increments unassignment counts for a role.
func (m *Metrics) RecordUnassignment(ctx context.Context, role string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("role", strings.TrimSpace(role)))
	m.unassignments.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRoleReplacement increments registry replacement counts.
func (m *Metrics) RecordRoleReplacement(ctx context.Context) {
	if m == nil {
		return
	}
	m.roleReplacements.Add(ctx, 1)
}

// RecordMemberWrite increments member mutation counts by operation.
func (m *Metrics) RecordMemberWrite(ctx context.Context, op string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("op", strings.TrimSpace(op)))
	m.memberWrites.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordUnavailabilityWrite increments unavailability mutation counts.
func (m *Metrics) RecordUnavailabilityWrite(ctx context.Context, op string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("op", strings.TrimSpace(op)))
	m.availabilityFlips.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"role":        {},
	"op":          {},
	"endpoint":    {},
	"method":      {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
// Member names and ids never become label values.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
