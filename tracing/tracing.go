package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/fluxcost"

// Init configures OpenTelemetry with the stdout exporter backed by either
// os.Stdout or the specified file.  The first successful initialisation wins;
// later calls return its error, if any, and never touch outputFile.
func Init(serviceName, serviceVersion, outputFile string) error {
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanExporter, io.Closer, error) {
		var w io.Writer = os.Stdout
		var closer io.Closer
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return nil, nil, err
			}
			w, closer = f, f
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil && closer != nil {
			_ = closer.Close()
		}
		return exporter, closer, err
	})
}

// InitWithExporter configures OpenTelemetry with the supplied exporter (OTLP,
// Jaeger, an in-memory test exporter, ...).
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanExporter, io.Closer, error) {
		return exporter, nil, nil
	})
}

// Shutdown flushes the installed provider and closes its output file.
func Shutdown(ctx context.Context) error {
	mux.Lock()
	defer mux.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if output != nil {
		if cErr := output.Close(); err == nil {
			err = cErr
		}
		output = nil
	}
	provider = nil
	return err
}

var (
	mux         sync.Mutex
	installed   bool
	providerErr error
	provider    *sdktrace.TracerProvider
	output      io.Closer
)

func installProvider(serviceName, serviceVersion string, newExporter func() (sdktrace.SpanExporter, io.Closer, error)) error {
	mux.Lock()
	defer mux.Unlock()
	if installed {
		return providerErr
	}
	installed = true
	exporter, closer, err := newExporter()
	if err != nil {
		providerErr = err
		return err
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		providerErr = err
		return err
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	output = closer
	otel.SetTracerProvider(provider)
	return nil
}

// Span wraps an OpenTelemetry span so callers do not import the upstream
// packages directly.
type Span struct {
	span trace.Span
}

// WithAttributes attaches attributes to the span.
func (s *Span) WithAttributes(attrs ...attribute.KeyValue) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	s.span.SetAttributes(attrs...)
	return s
}

// StartSpan starts an internal child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// EndSpan records err (or OK) as the span status and ends it.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	if err != nil {
		sp.span.RecordError(err)
		sp.span.SetStatus(codes.Error, err.Error())
	} else {
		sp.span.SetStatus(codes.Ok, "")
	}
	sp.span.End()
}
