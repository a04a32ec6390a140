package render

import (
	"github.com/pders01/cinemaddict/internal/dom"
)

// StatefulHooks is implemented by concrete stateful components.
type StatefulHooks[S any] interface {
	// Template renders markup for the given state.
	Template(state S) string
	// RestoreHandlers attaches the component's listeners to the current
	// node. It runs after every structural re-render.
	RestoreHandlers()
}

// Scroller is implemented by state types that remember a scroll offset.
// The reconciler reapplies it to the node after every re-render.
type Scroller interface {
	ScrollOffset() int
}

// Stateful owns a component's state and keeps its single output node in
// step with it.
type Stateful[S any] struct {
	*View
	state      S
	hooks      StatefulHooks[S]
	pending    bool
	generation int
	renders    int
}

// NewStateful creates a stateful view. The hooks are usually the concrete
// component embedding the result.
func NewStateful[S any](host *Host, initial S, hooks StatefulHooks[S]) *Stateful[S] {
	s := &Stateful[S]{state: initial, hooks: hooks}
	s.View = NewView(host, func() string { return s.hooks.Template(s.state) }, hooks.RestoreHandlers)
	return s
}

// State returns a copy of the current state.
func (s *Stateful[S]) State() S {
	return s.state
}

// Renders counts re-renders after the first one.
func (s *Stateful[S]) Renders() int {
	return s.renders
}

// SetState applies update right away and schedules a single in-place patch
// for the next tick. Calls made before the patch runs are folded into it.
func (s *Stateful[S]) SetState(update func(*S)) {
	update(&s.state)
	if s.element == nil || s.pending {
		return
	}
	s.pending = true
	gen := s.generation
	s.host.Sched.Post(func() {
		if !s.pending || gen != s.generation {
			return
		}
		s.pending = false
		s.patch()
	})
}

// UpdateElement applies update and immediately swaps in a freshly rendered
// node at the old node's position. Use it when the set of interactive
// elements changes. Any pending patch is dropped since the new node already
// reflects the state.
func (s *Stateful[S]) UpdateElement(update func(*S)) {
	update(&s.state)
	s.generation++
	s.pending = false

	prev := s.element
	if prev == nil {
		return
	}
	focus, hasFocus := s.focusPath(prev)

	s.ReleaseHandlers()
	s.element = nil
	next := s.Element() // binds handlers exactly once

	if parent := prev.Parent; parent != nil {
		parent.InsertBefore(next, prev)
		parent.RemoveChild(prev)
	}
	s.host.Doc.Release(prev)

	s.restore(next, focus, hasFocus)
	s.renders++
}

// patch regenerates markup and moves it into the existing node so the
// node's identity, and with it any outside reference, survives.
func (s *Stateful[S]) patch() {
	el := s.element
	if el == nil {
		return
	}
	focus, hasFocus := s.focusPath(el)
	fresh := dom.MustParse(s.hooks.Template(s.state))

	s.ReleaseHandlers()
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		s.host.Doc.Release(c)
		c = next
	}
	el.Attr = fresh.Attr
	for c := fresh.FirstChild; c != nil; {
		next := c.NextSibling
		fresh.RemoveChild(c)
		el.AppendChild(c)
		c = next
	}

	s.hooks.RestoreHandlers()
	s.restore(el, focus, hasFocus)
	s.renders++
}

func (s *Stateful[S]) focusPath(root *dom.Node) ([]int, bool) {
	active := s.host.Doc.ActiveElement()
	if active == nil {
		return nil, false
	}
	return dom.PathOf(root, active)
}

func (s *Stateful[S]) restore(el *dom.Node, focus []int, hasFocus bool) {
	if sc, ok := any(s.state).(Scroller); ok {
		s.host.Doc.SetScrollTop(el, sc.ScrollOffset())
	}
	if hasFocus {
		if n := dom.NodeAt(el, focus); n != nil {
			s.host.Doc.Focus(n)
		}
	}
}
