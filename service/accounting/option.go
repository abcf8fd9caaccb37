package accounting

import (
	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/service/dao"
	"github.com/viant/fluxcost/service/event"
	"go.uber.org/zap"
)

// Option configures the accounting service.
type Option func(*Service)

// WithRepository sets the process repository.
func WithRepository(repository dao.ProcessRepository) Option {
	return func(s *Service) {
		s.repository = repository
	}
}

// WithRegistry sets the policy registry.
func WithRegistry(registry *policy.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithPool sets the pool used by ComputeAllConcurrent.  Without a pool every
// batch gets its own goroutine.
func WithPool(pool dao.Submitter) Option {
	return func(s *Service) {
		s.pool = pool
	}
}

// WithBatchSize sets how many processes one unit of concurrent work covers.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		s.batchSize = size
	}
}

// WithPublisher emits an event for every committed mutation.
func WithPublisher(publisher *event.Publisher[Record]) Option {
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
