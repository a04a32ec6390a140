package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusNotifiesInRegistrationOrder(t *testing.T) {
	var bus Bus
	var calls []string

	bus.Subscribe(func(kind UpdateKind, payload any) {
		calls = append(calls, "first:"+kind.String()+":"+payload.(string))
	})
	bus.Subscribe(func(kind UpdateKind, payload any) {
		calls = append(calls, "second:"+kind.String()+":"+payload.(string))
	})

	bus.Notify(Patch, "film-1")

	assert.Equal(t, []string{"first:PATCH:film-1", "second:PATCH:film-1"}, calls)
	assert.Equal(t, 2, bus.Len())
}

func TestBusWithoutSubscribers(t *testing.T) {
	var bus Bus
	assert.NotPanics(t, func() { bus.Notify(Init, nil) })
}

func TestBusPropagatesHandlerPanic(t *testing.T) {
	var bus Bus
	reached := false
	bus.Subscribe(func(UpdateKind, any) { panic("boom") })
	bus.Subscribe(func(UpdateKind, any) { reached = true })

	assert.PanicsWithValue(t, "boom", func() { bus.Notify(Minor, nil) })
	assert.False(t, reached, "handlers after a panicking one must not run")
}

func TestUpdateKindString(t *testing.T) {
	assert.Equal(t, "INIT", Init.String())
	assert.Equal(t, "INIT_ERROR", InitError.String())
	assert.Equal(t, "MINOR", Minor.String())
	assert.Equal(t, "MAJOR", Major.String())
	assert.Equal(t, "UpdateKind(99)", UpdateKind(99).String())
}

func TestUnreachablePanics(t *testing.T) {
	assert.PanicsWithValue(t, "observable: unhandled update kind UpdateKind(7)", func() {
		Unreachable(UpdateKind(7))
	})
}
