// Package resource defines the billable resource kinds and the immutable
// resource instances allocated to processes.
package resource

import (
	"fmt"
	"strings"
)

// Kind identifies a billable resource.  The set is open: a kind becomes
// billable once a policy constructor is registered for it.
type Kind string

// Built-in resource kinds.
const (
	CPU     Kind = "cpu"     // capacity in cores
	Memory  Kind = "memory"  // capacity in MB
	Storage Kind = "storage" // capacity in GB
)

// Builtins returns the kinds shipped with the engine.
func Builtins() []Kind {
	return []Kind{CPU, Memory, Storage}
}

// ParseKind normalises text into a Kind.  Matching is case-insensitive and
// surrounding whitespace is ignored.
func ParseKind(text string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return "", fmt.Errorf("resource kind was empty")
	}
	return Kind(normalized), nil
}

func (k Kind) String() string {
	return string(k)
}

// Instance is one resource of a given kind and capacity.  It is a value type
// and never changes after construction.
type Instance struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Capacity uint32 `json:"capacity" yaml:"capacity"`
}

// New creates a resource instance.
func New(kind Kind, capacity uint32) Instance {
	return Instance{Kind: kind, Capacity: capacity}
}

func (i Instance) String() string {
	return fmt.Sprintf("%s(%d)", i.Kind, i.Capacity)
}
