// Package policy holds the billing rules applied to resource allocations.
//
// A Policy turns a usage duration into a cost and a penalty for one resource
// instance.  Policies are created through a Registry that maps every
// resource.Kind to a Constructor, so new kinds can be billed without touching
// the accounting engine:
//
//	registry := policy.Default()
//	_ = registry.Register("gpu", func(capacity uint32) policy.Policy { return newGPU(capacity) })
//	p, err := registry.Create("gpu", 2)
//
// All built-in policies are pure and safe for concurrent use.
package policy
