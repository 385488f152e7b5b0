package engine

import (
	"context"
	"sync"

	"greenkit/core"
)

// Handler receives one engagement event. Sync handlers run inline with the
// ledger operation that produced the event, so they should return quickly;
// slow consumers such as webhook delivery belong on an async bus.
type Handler func(context.Context, core.Event)

// DispatchMode selects how Publish hands events to handlers.
type DispatchMode int

const (
	// DispatchSync runs handlers inline. Tests and CLI sessions use this so
	// level-up and unlock effects are observable immediately.
	DispatchSync DispatchMode = iota
	// DispatchAsync queues events for a small worker pool. The server runs
	// in this mode so a slow bridge cannot stall activity recording.
	DispatchAsync
)

// asyncDepth absorbs a burst of activity recordings from a busy community;
// events beyond it are dropped rather than blocking the ledger.
const asyncDepth = 2048

const asyncWorkers = 4

// EventBus fans engagement events out to the bridges attached to the engine:
// the realtime hub, the analytics tracker, webhook sinks and any caller
// subscriptions. Safe for concurrent use.
type EventBus struct {
	mode DispatchMode

	mu     sync.RWMutex
	nextID int64
	byType map[core.EventType]map[int64]Handler

	queue  chan core.Event
	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewEventBus(mode DispatchMode) *EventBus {
	b := &EventBus{
		mode:   mode,
		byType: make(map[core.EventType]map[int64]Handler),
	}
	if mode == DispatchAsync {
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		b.queue = make(chan core.Event, asyncDepth)
		b.done.Add(asyncWorkers)
		for i := 0; i < asyncWorkers; i++ {
			go b.drain(ctx)
		}
	}
	return b
}

func (b *EventBus) drain(ctx context.Context) {
	defer b.done.Done()
	for {
		select {
		case ev := <-b.queue:
			b.deliver(context.Background(), ev)
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the async workers and waits for any delivery in flight to
// finish. Events still queued are discarded.
func (b *EventBus) Close() {
	if b.cancel != nil {
		b.cancel()
		b.done.Wait()
	}
}

// Subscribe attaches handler to one event type and returns a detach func.
func (b *EventBus) Subscribe(typ core.EventType, handler func(context.Context, core.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	if b.byType[typ] == nil {
		b.byType[typ] = make(map[int64]Handler)
	}
	b.byType[typ][id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.byType[typ], id)
	}
}

// Publish delivers ev to every handler subscribed to its type. In async mode
// a full queue drops the event so the producing operation never blocks.
func (b *EventBus) Publish(ctx context.Context, ev core.Event) {
	if b.mode == DispatchAsync {
		select {
		case b.queue <- ev:
		default:
		}
		return
	}
	b.deliver(ctx, ev)
}

// deliver snapshots the handler set before invoking so a handler may
// subscribe or detach without deadlocking.
func (b *EventBus) deliver(ctx context.Context, ev core.Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.byType[ev.Type]))
	for _, h := range b.byType[ev.Type] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ctx, ev)
	}
}
