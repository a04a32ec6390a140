package render

import (
	"github.com/pders01/cinemaddict/internal/dom"
)

// View is the stateless base embedded by concrete components. It renders
// its markup lazily, caches the node and tracks every listener it
// registers so they can be released together.
type View struct {
	host     *Host
	template func() string
	bind     func()
	element  *dom.Node
	cleanups []func()
}

// NewView builds a view from a markup function. bind, when non-nil, runs
// each time a fresh node is created and attaches the view's handlers.
func NewView(host *Host, template func() string, bind func()) *View {
	return &View{host: host, template: template, bind: bind}
}

// Host returns the view's surroundings.
func (v *View) Host() *Host {
	return v.host
}

// Element returns the cached node, rendering and binding it on first use.
func (v *View) Element() *dom.Node {
	if v.element == nil {
		v.element = dom.MustParse(v.template())
		if v.bind != nil {
			v.bind()
		}
	}
	return v.element
}

// Rendered reports whether the node exists.
func (v *View) Rendered() bool {
	return v.element != nil
}

// RemoveElement detaches the node, drops every listener the view added and
// forgets the node.
func (v *View) RemoveElement() {
	v.ReleaseHandlers()
	if v.element == nil {
		return
	}
	dom.Detach(v.element)
	v.host.Doc.Release(v.element)
	v.element = nil
}

// Query finds the first match for sel inside the view's node.
func (v *View) Query(sel string) *dom.Node {
	return dom.Query(v.Element(), sel)
}

// QueryAll finds every match for sel inside the view's node.
func (v *View) QueryAll(sel string) []*dom.Node {
	return dom.QueryAll(v.Element(), sel)
}

// On registers a tracked listener on n.
func (v *View) On(n *dom.Node, event string, fn dom.Listener) {
	if n == nil {
		return
	}
	v.cleanups = append(v.cleanups, v.host.Doc.AddEventListener(n, event, fn))
}

// OnDocument registers a tracked document-level listener.
func (v *View) OnDocument(event string, fn dom.Listener) {
	v.cleanups = append(v.cleanups, v.host.Doc.AddDocumentListener(event, fn))
}

// ReleaseHandlers removes every listener registered through On and
// OnDocument.
func (v *View) ReleaseHandlers() {
	for _, c := range v.cleanups {
		c()
	}
	v.cleanups = nil
}

// Shake plays the failure animation on the node matching sel, or on the
// whole view when sel is empty. done, if set, runs once the animation ends.
// The node is looked up again when the timer fires because the view may
// have re-rendered in between.
func (v *View) Shake(sel string, done func()) {
	find := func() *dom.Node {
		if v.element == nil {
			return nil
		}
		if sel == "" {
			return v.element
		}
		return dom.Query(v.element, sel)
	}

	dom.AddClass(find(), ShakeClass)
	v.host.Sched.After(v.host.ShakeTimeout, func() {
		dom.RemoveClass(find(), ShakeClass)
		if done != nil {
			done()
		}
	})
}
