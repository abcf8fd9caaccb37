package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/fluxcost/internal/clock"
)

// Delta represents an incremental counter change.
type Delta struct {
	Total     int
	Completed int
}

// Progress keeps report counters.  It is safe for concurrent use.
type Progress struct {
	Report    string
	StartedAt time.Time

	TotalProcesses     int
	CompletedProcesses int

	sync.Mutex
	onChange func(Progress)
}

// Done reports whether every known process has been accounted.
func (p *Progress) Done() bool {
	if p == nil {
		return true
	}
	p.Lock()
	defer p.Unlock()
	return p.CompletedProcesses >= p.TotalProcesses
}

// Update applies the delta.  The onChange callback, if any, receives a copy
// outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.TotalProcesses += d.Total
	p.CompletedProcesses += d.Completed
	snapshot := p.copyLocked()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copyLocked()
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		Report:             p.Report,
		StartedAt:          p.StartedAt,
		TotalProcesses:     p.TotalProcesses,
		CompletedProcesses: p.CompletedProcesses,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, report string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		Report:    report,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
