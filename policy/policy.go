package policy

// Policy computes the cost and penalty of using one resource instance for
// usageTime seconds.  Implementations must be pure.
type Policy interface {
	Cost(usageTime uint32) int64
	Penalty(usageTime uint32) int64
}

// Constructor binds a policy to the capacity of a resource instance.
type Constructor func(capacity uint32) Policy

// Base supplies the default zero penalty.  Embed it in policies that only
// charge a cost.
type Base struct{}

// Penalty returns 0.
func (Base) Penalty(uint32) int64 {
	return 0
}

// Func adapts a plain cost function to a Policy without penalty.
type Func func(usageTime uint32) int64

// Cost calls f.
func (f Func) Cost(usageTime uint32) int64 {
	return f(usageTime)
}

// Penalty returns 0.
func (f Func) Penalty(uint32) int64 {
	return 0
}
