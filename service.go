package fluxcost

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/runtime/billing"
	"github.com/viant/fluxcost/service/accounting"
	"github.com/viant/fluxcost/service/dao"
	"github.com/viant/fluxcost/service/dao/process/memory"
	"github.com/viant/fluxcost/service/event"
	"github.com/viant/fluxcost/service/worker"
	"github.com/viant/fluxcost/tracing"
)

// Service is the engine façade.  It owns the policy registry, the process
// repository and the aggregation worker pool.
type Service struct {
	config      *Config
	logger      *zap.Logger
	registry    *policy.Registry
	repository  dao.ProcessRepository
	publisher   *event.Publisher[accounting.Record]
	pool        *worker.Pool
	accounting  *accounting.Service
	tracingInit func() error
}

// New creates a service with the default configuration adjusted by options.
func New(options ...Option) (*Service, error) {
	return NewFromConfig(DefaultConfig(), options...)
}

// NewFromConfig creates a service from config; options are applied on top.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Service{config: config.clone(), logger: zap.NewNop()}
	for _, opt := range options {
		opt(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.tracingInit == nil && s.config.Tracing.Enabled {
		t := s.config.Tracing
		s.tracingInit = func() error { return tracing.Init(t.ServiceName, t.ServiceVersion, t.OutputFile) }
	}
	if s.tracingInit != nil {
		if err := s.tracingInit(); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.registry == nil {
		kinds, _ := s.config.Resources.kinds()
		s.registry = policy.NewRegistry()
		if err := policy.RegisterBuiltins(s.registry, kinds...); err != nil {
			return fmt.Errorf("failed to register resources: %w", err)
		}
	}
	if s.repository == nil {
		s.repository = memory.New(memory.WithShards(s.config.Repository.Shards))
	}
	var err error
	if s.pool, err = worker.New(worker.WithConfig(s.config.Pool), worker.WithLogger(s.logger)); err != nil {
		return err
	}
	options := []accounting.Option{
		accounting.WithRepository(s.repository),
		accounting.WithRegistry(s.registry),
		accounting.WithPool(s.pool),
		accounting.WithBatchSize(s.config.Aggregation.BatchSize),
		accounting.WithLogger(s.logger),
	}
	if s.publisher != nil {
		options = append(options, accounting.WithPublisher(s.publisher))
	}
	s.accounting, err = accounting.New(options...)
	return err
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Registry returns the policy registry.
func (s *Service) Registry() *policy.Registry {
	return s.registry
}

// RegisterPolicy binds kind to ctor.  Call it before serving traffic.
func (s *Service) RegisterPolicy(kind resource.Kind, ctor policy.Constructor) error {
	if err := s.registry.Register(kind, ctor); err != nil {
		return err
	}
	s.logger.Info("policy registered", zap.Stringer("kind", kind))
	return nil
}

// Start launches the aggregation workers.  Until then ComputeAllConcurrent
// runs on the calling goroutine.
func (s *Service) Start(_ context.Context) error {
	if err := s.pool.Start(); err != nil {
		return err
	}
	s.logger.Info("fluxcost started",
		zap.Int("workers", s.pool.Size()),
		zap.Int("batch_size", s.config.Aggregation.BatchSize),
		zap.Strings("kinds", kindNames(s.registry.Kinds())),
	)
	return nil
}

// Shutdown drains the queued aggregation work and stops the workers.  When
// tracing was enabled through the config, the span output is flushed and
// closed.
func (s *Service) Shutdown(ctx context.Context) error {
	s.pool.Shutdown()
	s.logger.Info("fluxcost stopped", zap.Int("processes", s.repository.Len()))
	if s.config.Tracing.Enabled {
		return tracing.Shutdown(ctx)
	}
	return nil
}

// AddProcess registers an empty ledger for pid; ErrDuplicateProcess when pid
// exists.
func (s *Service) AddProcess(ctx context.Context, pid billing.PID) error {
	return s.accounting.AddProcess(ctx, pid)
}

// AddAllocation appends an allocation to the ledger of pid.  It fails with
// ErrProcessNotFound or ErrUnknownResourceKind without side effects.
func (s *Service) AddAllocation(ctx context.Context, pid billing.PID, usageTime uint32, kind resource.Kind, capacity uint32) error {
	return s.accounting.AddAllocation(ctx, pid, usageTime, kind, capacity)
}

// ComputeProcess returns the totals of pid; false when pid is unknown.
func (s *Service) ComputeProcess(ctx context.Context, pid billing.PID) (billing.Summary, bool) {
	return s.accounting.ComputeProcess(ctx, pid)
}

// ComputeAll returns one summary per process, computed sequentially.
func (s *Service) ComputeAll(ctx context.Context) []billing.Summary {
	return s.accounting.ComputeAll(ctx)
}

// ComputeAllConcurrent returns the same summaries as ComputeAll, computed on
// the worker pool, in no particular order.
func (s *Service) ComputeAllConcurrent(ctx context.Context) []billing.Summary {
	return s.accounting.ComputeAllConcurrent(ctx)
}

func kindNames(kinds []resource.Kind) []string {
	ret := make([]string, len(kinds))
	for i, kind := range kinds {
		ret[i] = kind.String()
	}
	return ret
}
