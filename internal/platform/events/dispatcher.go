package events

import (
	"context"

	"github.com/rs/zerolog"
)

// Observer receives the outcome of every delivery attempt.
type Observer interface {
	EventPublished(eventType string, err error)
}

// Dispatcher hands events to the underlying publisher from a single worker
// so request handlers never wait on the broker. Events are dropped with a
// warning when the queue is full.
type Dispatcher struct {
	next     Publisher
	queue    chan Event
	observer Observer
	log      zerolog.Logger
}

func NewDispatcher(next Publisher, size int, observer Observer, log zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 128
	}
	return &Dispatcher{
		next:     next,
		queue:    make(chan Event, size),
		observer: observer,
		log:      log.With().Str("component", "events").Logger(),
	}
}

func (d *Dispatcher) Publish(_ context.Context, evt Event) error {
	select {
	case d.queue <- evt:
	default:
		d.log.Warn().Str("type", evt.Type).Str("entity_id", evt.EntityID).Msg("event queue full, dropping event")
	}
	return nil
}

// Run delivers queued events until ctx is cancelled, then flushes what is
// already queued.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return nil
		case evt := <-d.queue:
			d.deliver(context.WithoutCancel(ctx), evt)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case evt := <-d.queue:
			d.deliver(context.Background(), evt)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, evt Event) {
	err := d.next.Publish(ctx, evt)
	if d.observer != nil {
		d.observer.EventPublished(evt.Type, err)
	}
	if err != nil {
		d.log.Warn().Err(err).Str("type", evt.Type).Str("entity_id", evt.EntityID).Msg("event publish failed")
	}
}
