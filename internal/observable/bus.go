// Package observable carries typed data-change notifications from models to
// the presenters that render them.
package observable

import "fmt"

// UpdateKind controls how much of the UI a notification re-renders.
type UpdateKind int

const (
	// Init marks a completed initial load.
	Init UpdateKind = iota
	// InitError marks a failed initial load.
	InitError
	// Patch means one entity changed; only its view re-renders.
	Patch
	// Minor recomputes the visible list, keeping pagination and sort.
	Minor
	// Major resets pagination and sort before re-rendering.
	Major
)

func (k UpdateKind) String() string {
	switch k {
	case Init:
		return "INIT"
	case InitError:
		return "INIT_ERROR"
	case Patch:
		return "PATCH"
	case Minor:
		return "MINOR"
	case Major:
		return "MAJOR"
	default:
		return fmt.Sprintf("UpdateKind(%d)", int(k))
	}
}

// Unreachable reports an update kind that reached a dispatch with no
// matching case. It always panics.
func Unreachable(k UpdateKind) {
	panic(fmt.Sprintf("observable: unhandled update kind %s", k))
}

// Handler receives every notification published on a Bus.
type Handler func(kind UpdateKind, payload any)

// Bus is a synchronous publish/subscribe list. The zero value is ready to
// use. It is not safe for concurrent use; callers keep it on the event loop.
type Bus struct {
	handlers []Handler
}

// Subscribe registers h. Handlers run in registration order.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Notify invokes every handler with (kind, payload) before returning. A
// panicking handler propagates to the caller, so models notify only once
// their own state is consistent.
func (b *Bus) Notify(kind UpdateKind, payload any) {
	for _, h := range b.handlers {
		h(kind, payload)
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	return len(b.handlers)
}
