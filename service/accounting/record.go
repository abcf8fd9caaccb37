package accounting

import (
	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/runtime/billing"
)

// Record is the payload of accounting events.  Resource is nil for
// process.added events.
type Record struct {
	PID       billing.PID        `json:"pid"`
	Resource  *resource.Instance `json:"resource,omitempty"`
	UsageTime uint32             `json:"usageTime,omitempty"`
	Cost      int64              `json:"cost,omitempty"`
	Penalty   int64              `json:"penalty,omitempty"`
}
