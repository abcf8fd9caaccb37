package policy

const (
	cpuBaseCost     = 50
	cpuBasicQuota   = 2  // seconds
	cpuExceedFactor = 10 // per second above quota
)

// CPU bills a flat base plus a per-second surcharge above the basic quota.
// Capacity (cores) does not influence the price.
type CPU struct {
	Base
	Cores uint32
}

// NewCPU is the Constructor for resource.CPU.
func NewCPU(capacity uint32) Policy {
	return &CPU{Cores: capacity}
}

func (c *CPU) Cost(usageTime uint32) int64 {
	cost := int64(cpuBaseCost)
	if usageTime > cpuBasicQuota {
		cost = AddCost(cost, mulCost(uint64(usageTime-cpuBasicQuota), cpuExceedFactor))
	}
	return cost
}
