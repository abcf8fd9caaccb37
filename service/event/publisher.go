package event

import (
	"context"

	"github.com/viant/fluxcost/service/messaging"
	"github.com/viant/fluxcost/service/messaging/memory"
)

type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// NewMemoryPublisher creates a publisher backed by an in-memory queue.
func NewMemoryPublisher[T any](config memory.Config) *Publisher[T] {
	return NewPublisher[T](memory.NewQueue[Event[T]](config))
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	return p.queue.Publish(ctx, event)
}

// Consume blocks for the next event and acknowledges it.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
