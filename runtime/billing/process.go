package billing

import "github.com/viant/fluxcost/policy"

// PID identifies a process.
type PID = uint32

// Process owns the append-only ledger of allocations for one PID.
type Process struct {
	pid         PID
	allocations []*Allocation
}

// NewProcess creates a process with an empty ledger.
func NewProcess(pid PID) *Process {
	return &Process{pid: pid}
}

// PID returns the process identifier.
func (p *Process) PID() PID {
	return p.pid
}

// AddAllocation appends to the ledger.  The caller must hold exclusive
// access to p.
func (p *Process) AddAllocation(allocation *Allocation) {
	if allocation == nil {
		return
	}
	p.allocations = append(p.allocations, allocation)
}

// Len returns the ledger length.
func (p *Process) Len() int {
	return len(p.allocations)
}

// Allocations returns a copy of the ledger in insertion order.
func (p *Process) Allocations() []*Allocation {
	return append([]*Allocation(nil), p.allocations...)
}

// Cost sums the cost of every allocation.
func (p *Process) Cost() int64 {
	var total int64
	for _, allocation := range p.allocations {
		total = policy.AddCost(total, allocation.Cost())
	}
	return total
}

// Penalty sums the penalty of every allocation.
func (p *Process) Penalty() int64 {
	var total int64
	for _, allocation := range p.allocations {
		total = policy.AddCost(total, allocation.Penalty())
	}
	return total
}

// Summary computes the process totals.
func (p *Process) Summary() Summary {
	return Summary{PID: p.pid, Cost: p.Cost(), Penalty: p.Penalty()}
}
