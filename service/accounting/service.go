package accounting

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/viant/fluxcost/internal/clock"
	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/progress"
	"github.com/viant/fluxcost/runtime/billing"
	"github.com/viant/fluxcost/service/dao"
	"github.com/viant/fluxcost/service/dao/process/memory"
	"github.com/viant/fluxcost/service/event"
	"github.com/viant/fluxcost/service/worker"
	"github.com/viant/fluxcost/tracing"
)

// Service is the accounting façade.
type Service struct {
	repository dao.ProcessRepository
	registry   *policy.Registry
	pool       dao.Submitter
	publisher  *event.Publisher[Record]
	logger     *zap.Logger
	batchSize  int
}

// New creates the service.  The repository defaults to an in-memory one and
// the registry to all built-in policies.
func New(options ...Option) (*Service, error) {
	s := &Service{
		batchSize: dao.DefaultBatchSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.repository == nil {
		s.repository = memory.New()
	}
	if s.registry == nil {
		s.registry = policy.Default()
	}
	if s.pool == nil {
		s.pool = goroutinePerWork{}
	}
	if s.batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", s.batchSize)
	}
	return s, nil
}

// Registry returns the policy registry.
func (s *Service) Registry() *policy.Registry {
	return s.registry
}

// Repository returns the process repository.
func (s *Service) Repository() dao.ProcessRepository {
	return s.repository
}

// AddProcess registers an empty ledger for pid.
func (s *Service) AddProcess(ctx context.Context, pid billing.PID) (err error) {
	ctx, span := tracing.StartSpan(ctx, "accounting.AddProcess")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(attribute.Int64("process.pid", int64(pid)))

	if err = s.repository.Add(ctx, pid); err != nil {
		return fmt.Errorf("failed to add process: %w", err)
	}
	s.logger.Debug("process added", zap.Uint32("pid", pid))
	s.publish(ctx, event.TypeProcessAdded, Record{PID: pid})
	return nil
}

// AddAllocation appends an allocation of kind/capacity used for usageTime
// seconds to the ledger of pid.  The kind is resolved and the allocation
// priced before the process is locked, so a failed call never mutates
// anything.
func (s *Service) AddAllocation(ctx context.Context, pid billing.PID, usageTime uint32, kind resource.Kind, capacity uint32) (err error) {
	ctx, span := tracing.StartSpan(ctx, "accounting.AddAllocation")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(
		attribute.Int64("process.pid", int64(pid)),
		attribute.String("resource.kind", kind.String()),
		attribute.Int64("resource.capacity", int64(capacity)),
		attribute.Int64("usage.time", int64(usageTime)),
	)

	p, err := s.registry.Create(kind, capacity)
	if err != nil {
		return fmt.Errorf("failed to add allocation to pid %d: %w", pid, err)
	}
	instance := resource.New(kind, capacity)
	allocation, err := billing.NewAllocation(instance, usageTime, p)
	if err != nil {
		return err
	}
	record := Record{
		PID:       pid,
		Resource:  &instance,
		UsageTime: usageTime,
		Cost:      allocation.Cost(),
		Penalty:   allocation.Penalty(),
	}
	if err = s.repository.Update(ctx, pid, func(process *billing.Process) error {
		process.AddAllocation(allocation)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to add allocation: %w", err)
	}

	s.logger.Debug("allocation added",
		zap.Uint32("pid", pid),
		zap.Stringer("resource", instance),
		zap.Uint32("usage_time", usageTime),
		zap.Int64("cost", record.Cost),
		zap.Int64("penalty", record.Penalty),
	)
	s.publish(ctx, event.TypeAllocationAdded, record)
	return nil
}

// ComputeProcess returns the totals of pid; false when pid is unknown.
func (s *Service) ComputeProcess(ctx context.Context, pid billing.PID) (billing.Summary, bool) {
	ctx, span := tracing.StartSpan(ctx, "accounting.ComputeProcess")
	span.WithAttributes(attribute.Int64("process.pid", int64(pid)))

	var summary billing.Summary
	err := s.repository.View(ctx, pid, func(process *billing.Process) error {
		summary = process.Summary()
		return nil
	})
	if err != nil {
		tracing.EndSpan(span, err)
		if !errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn("compute process failed", zap.Uint32("pid", pid), zap.Error(err))
		}
		return billing.Summary{}, false
	}
	tracing.EndSpan(span, nil)
	return summary, true
}

// ComputeAll reports every process sequentially.
func (s *Service) ComputeAll(ctx context.Context) []billing.Summary {
	ctx, span := tracing.StartSpan(ctx, "accounting.ComputeAll")
	started := clock.Now()

	ret := make([]billing.Summary, 0, s.repository.Len())
	s.repository.ForEach(ctx, func(_ billing.PID, process *billing.Process) {
		ret = append(ret, process.Summary())
	})

	span.WithAttributes(attribute.Int("report.processes", len(ret)))
	tracing.EndSpan(span, nil)
	s.logger.Debug("report computed", zap.Int("processes", len(ret)), zap.Duration("elapsed", clock.Since(started)))
	return ret
}

// ComputeAllConcurrent reports every process on the pool.  It returns the
// same summaries as ComputeAll for the same repository state, in no
// particular order.  Progress is reported to a progress.Progress carried by
// ctx, if any.
func (s *Service) ComputeAllConcurrent(ctx context.Context) []billing.Summary {
	ctx, span := tracing.StartSpan(ctx, "accounting.ComputeAllConcurrent")
	started := clock.Now()

	expected := s.repository.Len()
	progress.UpdateCtx(ctx, progress.Delta{Total: expected})
	ret := dao.MapConcurrent(ctx, s.repository, s.pool, s.batchSize, func(_ billing.PID, process *billing.Process) billing.Summary {
		summary := process.Summary()
		progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
		return summary
	})
	if drift := len(ret) - expected; drift != 0 {
		progress.UpdateCtx(ctx, progress.Delta{Total: drift})
	}

	span.WithAttributes(
		attribute.Int("report.processes", len(ret)),
		attribute.Int("report.batch_size", s.batchSize),
	)
	tracing.EndSpan(span, nil)
	s.logger.Debug("concurrent report computed", zap.Int("processes", len(ret)), zap.Duration("elapsed", clock.Since(started)))
	return ret
}

func (s *Service) publish(ctx context.Context, eventType string, record Record) {
	if s.publisher == nil {
		return
	}
	e := event.NewEvent(&event.Context{PID: record.PID, EventType: eventType}, record)
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish accounting event",
			zap.String("event_type", eventType),
			zap.Uint32("pid", record.PID),
			zap.Error(err),
		)
	}
}

// goroutinePerWork runs every unit of work on a fresh goroutine.
type goroutinePerWork struct{}

func (goroutinePerWork) Submit(_ context.Context, work worker.Work) error {
	go work()
	return nil
}
