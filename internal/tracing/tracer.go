// Package tracing wires OpenTelemetry for scrawl. File I/O is the only
// blocking work the editor does, so spans wrap opening and saving files and
// make their latency visible without touching the terminal.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/scrawl/internal/log"
)

// ServiceName identifies scrawl in exported spans.
const ServiceName = "scrawl"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is returned.
	Enabled bool

	// Exporter selects the export backend: "none", "file", "stdout", "otlp".
	Exporter string

	// FilePath is the JSONL output for the "file" exporter.
	FilePath string

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string

	// SampleRate is the fraction of traces kept, in (0, 1].
	SampleRate float64
}

// DefaultConfig returns tracing disabled with the file exporter preselected.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     "file",
		OTLPEndpoint: "localhost:4317",
		SampleRate:   1.0,
	}
}

// Provider owns the SDK tracer provider, if any.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider builds a provider from cfg and installs it globally. Disabled
// tracing yields a no-op provider with no global side effects.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{
			tracer:  noop.NewTracerProvider().Tracer(ServiceName),
			enabled: false,
		}, nil
	}

	var (
		exporter sdktrace.SpanExporter
		err      error
	)

	switch cfg.Exporter {
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		exporter, err = NewFileExporter(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
	case "stdout":
		// The terminal is in raw mode while editing, so stdout spans are
		// only useful when stdout is redirected.
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		// Spans are few and the process may exit right after :q, so export
		// synchronously instead of batching.
		opts = append(opts, sdktrace.WithSyncer(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter, "sample_rate", sampleRate)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(ServiceName),
		enabled:  true,
	}, nil
}

// Tracer returns the configured tracer. It is never nil.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
