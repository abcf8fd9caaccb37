package event

import (
	"time"

	"github.com/viant/fluxcost/internal/clock"
	"github.com/viant/fluxcost/internal/idgen"
)

// Event types emitted by the accounting service.
const (
	TypeProcessAdded    = "process.added"
	TypeAllocationAdded = "allocation.added"
)

type Context struct {
	PID       uint32 `json:"pid"`
	EventType string `json:"eventType"`
}

type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
