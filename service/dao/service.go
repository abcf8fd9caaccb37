package dao

import (
	"context"

	"github.com/viant/fluxcost/runtime/billing"
)

// ProcessRepository is a concurrency-safe keyed store of processes.  Locking
// is per entry: an operation on one PID never waits for an operation on
// another PID.
type ProcessRepository interface {
	// Add inserts an empty process at pid or returns ErrAlreadyExists.
	Add(ctx context.Context, pid billing.PID) error

	// Update runs fn with exclusive access to the process at pid.
	Update(ctx context.Context, pid billing.PID, fn func(*billing.Process) error) error

	// View runs fn with shared access to the process at pid.
	View(ctx context.Context, pid billing.PID, fn func(*billing.Process) error) error

	// ForEach visits every process sequentially, each under its own read
	// lock released right after fn returns.
	ForEach(ctx context.Context, fn func(billing.PID, *billing.Process))

	// Snapshot returns handles to every entry present at call time.
	Snapshot(ctx context.Context) []Handle

	// Len returns the number of processes.
	Len() int

	// Clear removes every process.
	Clear()
}

// Handle gives shared access to one repository entry outside the repository
// lock.
type Handle interface {
	PID() billing.PID
	View(fn func(*billing.Process))
}
