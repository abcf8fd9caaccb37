package policy

const (
	memoryBaseCost     = 30
	memoryBasicQuotaMB = 1024
	memoryExceedFactor = 2
)

// Memory bills a flat base plus a surcharge proportional to usage time and
// to the megabytes above the basic quota.  The exceed test is on capacity,
// not on usage time.
type Memory struct {
	Base
	MB uint32
}

// NewMemory is the Constructor for resource.Memory.
func NewMemory(capacity uint32) Policy {
	return &Memory{MB: capacity}
}

func (m *Memory) Cost(usageTime uint32) int64 {
	cost := int64(memoryBaseCost)
	if m.MB > memoryBasicQuotaMB {
		exceed := uint64(m.MB - memoryBasicQuotaMB)
		cost = AddCost(cost, mulCost(uint64(usageTime), exceed, memoryExceedFactor))
	}
	return cost
}
