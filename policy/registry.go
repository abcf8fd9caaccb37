package policy

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/fluxcost/model/resource"
)

var (
	// ErrUnknownKind is returned when no constructor is registered for the
	// requested resource kind.
	ErrUnknownKind = errors.New("policy: unknown resource kind")

	// ErrInvalidKind is returned when registering an empty kind or a nil
	// constructor.
	ErrInvalidKind = errors.New("policy: invalid registration")
)

// Registry maps resource kinds to policy constructors.  It is normally
// populated once at startup and only read afterwards.
type Registry struct {
	constructors map[resource.Kind]Constructor
	mux          sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[resource.Kind]Constructor)}
}

// Default returns a registry with every built-in kind registered.
func Default() *Registry {
	ret := NewRegistry()
	_ = RegisterBuiltins(ret)
	return ret
}

// Register binds kind to ctor, replacing any previous binding.
func (r *Registry) Register(kind resource.Kind, ctor Constructor) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind", ErrInvalidKind)
	}
	if ctor == nil {
		return fmt.Errorf("%w: nil constructor for %s", ErrInvalidKind, kind)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.constructors[kind] = ctor
	return nil
}

// Create builds the policy for a resource instance of the given kind.
func (r *Registry) Create(kind resource.Kind, capacity uint32) (Policy, error) {
	r.mux.RLock()
	ctor, ok := r.constructors[kind]
	r.mux.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return ctor(capacity), nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind resource.Kind) bool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	_, ok := r.constructors[kind]
	return ok
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []resource.Kind {
	r.mux.RLock()
	ret := make([]resource.Kind, 0, len(r.constructors))
	for kind := range r.constructors {
		ret = append(ret, kind)
	}
	r.mux.RUnlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

var builtins = map[resource.Kind]Constructor{
	resource.CPU:     NewCPU,
	resource.Memory:  NewMemory,
	resource.Storage: NewStorage,
}

// RegisterBuiltins registers the built-in policies for the supplied kinds, or
// for all built-in kinds when none are given.
func RegisterBuiltins(r *Registry, kinds ...resource.Kind) error {
	if len(kinds) == 0 {
		kinds = resource.Builtins()
	}
	for _, kind := range kinds {
		ctor, ok := builtins[kind]
		if !ok {
			return fmt.Errorf("%w: %q is not a built-in kind", ErrUnknownKind, kind)
		}
		if err := r.Register(kind, ctor); err != nil {
			return err
		}
	}
	return nil
}
