package fluxcost

import (
	"go.uber.org/zap"

	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/service/accounting"
	"github.com/viant/fluxcost/service/dao"
	"github.com/viant/fluxcost/service/event"
	"github.com/viant/fluxcost/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service.
type Option func(s *Service)

// WithConfig replaces the whole configuration with a copy of config.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config.clone()
		}
	}
}

// WithWorkers sets the number of aggregation workers.
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.Pool.WorkerCount = count
	}
}

// WithBatchSize sets how many processes one unit of aggregation work covers.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		s.config.Aggregation.BatchSize = size
	}
}

// WithRepository sets the process repository; the configured shard count is
// ignored.
func WithRepository(repository dao.ProcessRepository) Option {
	return func(s *Service) {
		s.repository = repository
	}
}

// WithRegistry sets the policy registry; resources.kinds is ignored.
func WithRegistry(registry *policy.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithPublisher publishes an accounting event for every committed mutation.
func WithPublisher(publisher *event.Publisher[accounting.Record]) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracing configures OpenTelemetry tracing for the service.  If
// outputFile is empty the spans are written to stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom
// exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingInit = func() error {
			return tracing.InitWithExporter(serviceName, serviceVersion, exporter)
		}
	}
}
