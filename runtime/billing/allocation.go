package billing

import (
	"fmt"

	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/policy"
)

// Allocation records one resource instance used for usageTime seconds.  It is
// immutable; cost and penalty are delegated to the policy bound at creation.
type Allocation struct {
	resource  resource.Instance
	usageTime uint32
	policy    policy.Policy
}

// NewAllocation binds a resource instance, its usage time and the policy that
// bills it.
func NewAllocation(instance resource.Instance, usageTime uint32, p policy.Policy) (*Allocation, error) {
	if p == nil {
		return nil, fmt.Errorf("allocation of %v has no policy", instance)
	}
	return &Allocation{resource: instance, usageTime: usageTime, policy: p}, nil
}

// Resource returns the allocated instance.
func (a *Allocation) Resource() resource.Instance {
	return a.resource
}

// UsageTime returns the usage duration in seconds.
func (a *Allocation) UsageTime() uint32 {
	return a.usageTime
}

// Cost returns the cost of this allocation.
func (a *Allocation) Cost() int64 {
	return a.policy.Cost(a.usageTime)
}

// Penalty returns the penalty of this allocation.
func (a *Allocation) Penalty() int64 {
	return a.policy.Penalty(a.usageTime)
}

func (a *Allocation) String() string {
	return fmt.Sprintf("%v for %ds", a.resource, a.usageTime)
}
