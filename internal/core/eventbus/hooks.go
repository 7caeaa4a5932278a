package eventbus

import "sync"

// hookList is a registration list of lifecycle callbacks of one kind.
type hookList[F any] struct {
	mu  sync.RWMutex
	fns []F
}

func (l *hookList[F]) add(fn F) {
	l.mu.Lock()
	l.fns = append(l.fns, fn)
	l.mu.Unlock()
}

// each calls run with every registered hook. The list is copied first so
// hooks may register further hooks.
func (l *hookList[F]) each(run func(F)) {
	l.mu.RLock()
	fns := make([]F, len(l.fns))
	copy(fns, l.fns)
	l.mu.RUnlock()
	for _, fn := range fns {
		run(fn)
	}
}

// hooks holds the lifecycle hook state for the EventBus.
type hooks struct {
	onPublish   hookList[func(Event, any)]
	onDrop      hookList[func(Event, any)]
	onSubscribe hookList[func(Event)]
	onPanic     hookList[func(Event, any, any)]
}

// OnPublish registers a hook that fires after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) { bus.hooks.onPublish.add(fn) }

// OnDrop registers a hook that fires when an event is dropped because the
// buffer is full.
func (bus *EventBus) OnDrop(fn func(Event, any)) { bus.hooks.onDrop.add(fn) }

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *EventBus) OnSubscribe(fn func(Event)) { bus.hooks.onSubscribe.add(fn) }

// OnPanic registers a hook that fires when a subscriber panics. Panics in
// the hook itself are swallowed.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) { bus.hooks.onPanic.add(fn) }

// send enqueues an event and fires hooks. Used by the typed Publish* methods.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.hooks.onPublish.each(func(fn func(Event, any)) { fn(event, payload) })
	default:
		bus.hooks.onDrop.each(func(fn func(Event, any)) { fn(event, payload) })
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	bus.hooks.onSubscribe.each(func(fn func(Event)) { fn(event) })
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	bus.hooks.onPanic.each(func(fn func(Event, any, any)) {
		defer func() { _ = recover() }()
		fn(event, payload, recovered)
	})
}
