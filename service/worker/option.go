package worker

import "go.uber.org/zap"

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(count int) Option {
	return func(p *Pool) {
		p.config.WorkerCount = count
	}
}

// WithQueueSize sets how many submitted units may wait for a free worker
// before Submit blocks.
func WithQueueSize(size int) Option {
	return func(p *Pool) {
		p.config.QueueSize = size
	}
}

// WithConfig sets the whole pool configuration.
func WithConfig(config Config) Option {
	return func(p *Pool) {
		p.config = config
	}
}

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}
