package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("worker: pool closed")

	// ErrNotStarted is returned by Submit before Start.
	ErrNotStarted = errors.New("worker: pool not started")
)

// Work is a unit of work executed by the pool.
type Work func()

// Config represents pool configuration
type Config struct {
	// WorkerCount is the number of goroutines executing work
	WorkerCount int `json:"workers" yaml:"workers"`

	// QueueSize is the number of submitted units buffered ahead of the workers
	QueueSize int `json:"queueSize" yaml:"queueSize"`
}

// DefaultConfig returns one worker per CPU and a small buffer.
func DefaultConfig() Config {
	return Config{
		WorkerCount: runtime.NumCPU(),
		QueueSize:   64,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker.workers must be > 0")
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("worker.queueSize must be >= 0")
	}
	return nil
}

// Pool runs submitted work on a fixed number of goroutines.
type Pool struct {
	config   Config
	logger   *zap.Logger
	tasks    chan Work
	workerWg sync.WaitGroup
	mux      sync.RWMutex
	started  bool
	closed   bool
}

type worker struct {
	id   int
	pool *Pool
}

// New creates a pool; call Start before submitting work.
func New(options ...Option) (*Pool, error) {
	p := &Pool{
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	p.tasks = make(chan Work, p.config.QueueSize)
	return p, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.config.WorkerCount
}

// Start launches the worker goroutines.  Subsequent calls are no-ops.
func (p *Pool) Start() error {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	if p.started {
		return nil
	}
	p.started = true
	for i := 0; i < p.config.WorkerCount; i++ {
		w := &worker{id: i, pool: p}
		p.workerWg.Add(1)
		go w.run()
	}
	return nil
}

// Submit queues work, blocking while the queue is full.  It fails when the
// pool is not running or ctx is done before the work could be queued.
func (p *Pool) Submit(ctx context.Context, work Work) error {
	if work == nil {
		return nil
	}
	p.mux.RLock()
	defer p.mux.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	if !p.started {
		return ErrNotStarted
	}
	select {
	case p.tasks <- work:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting work and waits for queued work to drain.
func (p *Pool) Shutdown() {
	p.mux.Lock()
	if p.closed {
		p.mux.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mux.Unlock()
	p.workerWg.Wait()
}

func (w *worker) run() {
	defer w.pool.workerWg.Done()
	for work := range w.pool.tasks {
		w.execute(work)
	}
}

func (w *worker) execute(work Work) {
	defer func() {
		if r := recover(); r != nil {
			w.pool.logger.Error("work panicked", zap.Int("worker", w.id), zap.Any("panic", r))
		}
	}()
	work()
}
