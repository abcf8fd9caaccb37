package dao

import (
	"context"
	"sync"

	"github.com/viant/fluxcost/runtime/billing"
	"github.com/viant/fluxcost/service/worker"
)

// DefaultBatchSize is the number of processes handled by one unit of work in
// MapConcurrent when the caller does not specify a batch size.
const DefaultBatchSize = 16

// Submitter accepts units of work, e.g. *worker.Pool.
type Submitter interface {
	Submit(ctx context.Context, work worker.Work) error
}

// MapConcurrent snapshots the repository handles, fans fn out over pool in
// batches and collects one result per process.  Each call of fn runs under
// that process's read lock only.  Result order is unspecified.
//
// A batch the pool refuses (closed, not started, ctx done) runs on the
// calling goroutine, so the result always covers the whole snapshot.  A nil
// pool maps sequentially.  If fn panics, the first panic is re-raised on the
// calling goroutine once every batch has finished.
func MapConcurrent[R any](ctx context.Context, repo ProcessRepository, pool Submitter, batchSize int, fn func(billing.PID, *billing.Process) R) []R {
	handles := repo.Snapshot(ctx)
	if len(handles) == 0 {
		return []R{}
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	results := make([]R, len(handles))

	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  bool
		recovered interface{}
	)
	for start := 0; start < len(handles); start += batchSize {
		end := min(start+batchSize, len(handles))
		batch, offset := handles[start:end], start
		work := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicked, recovered = true, r })
				}
			}()
			for i, h := range batch {
				pid := h.PID()
				h.View(func(p *billing.Process) {
					results[offset+i] = fn(pid, p)
				})
			}
		}
		wg.Add(1)
		if pool == nil || pool.Submit(ctx, work) != nil {
			work()
		}
	}
	wg.Wait()
	if panicked {
		panic(recovered)
	}
	return results
}
