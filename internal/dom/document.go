// Package dom is the host tree the UI core renders into: an in-memory HTML
// document with listener, scroll and focus bookkeeping on top of
// golang.org/x/net/html nodes.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoElement is returned when markup contains no element node.
var ErrNoElement = errors.New("markup has no element")

// Listener handles a dispatched event.
type Listener func(*Event)

type registration struct {
	event   string
	fn      Listener
	removed bool
}

// Document owns a <body> element and everything attached to it. Listeners,
// scroll offsets and focus are tracked per node because html.Node has no
// room for them.
type Document struct {
	body         *html.Node
	listeners    map[*html.Node][]*registration
	docListeners []*registration
	scroll       map[*html.Node]int
	focused      *html.Node
}

// NewDocument returns a document with an empty body.
func NewDocument() *Document {
	return &Document{
		body:      &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body},
		listeners: make(map[*html.Node][]*registration),
		scroll:    make(map[*html.Node]int),
	}
}

// Body returns the root element.
func (d *Document) Body() *html.Node {
	return d.body
}

// Parse turns markup into a detached element. Leading whitespace and any
// nodes after the first element are dropped.
func Parse(markup string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, ErrNoElement
}

// MustParse is Parse for markup that is known to be valid.
func MustParse(markup string) *html.Node {
	n, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return n
}

// AddEventListener registers fn for event on n and returns a func that
// unregisters it.
func (d *Document) AddEventListener(n *html.Node, event string, fn Listener) func() {
	reg := &registration{event: event, fn: fn}
	d.listeners[n] = append(d.listeners[n], reg)
	return func() {
		reg.removed = true
		d.listeners[n] = dropRemoved(d.listeners[n])
		if len(d.listeners[n]) == 0 {
			delete(d.listeners, n)
		}
	}
}

// AddDocumentListener registers fn on the document itself. Document
// listeners see every event after it has bubbled through the tree.
func (d *Document) AddDocumentListener(event string, fn Listener) func() {
	reg := &registration{event: event, fn: fn}
	d.docListeners = append(d.docListeners, reg)
	return func() {
		reg.removed = true
		d.docListeners = dropRemoved(d.docListeners)
	}
}

// ListenerCount reports how many listeners n holds. Tests use it to check
// that re-renders do not leak handlers.
func (d *Document) ListenerCount(n *html.Node) int {
	return len(d.listeners[n])
}

// DocumentListenerCount reports how many document-level listeners exist.
func (d *Document) DocumentListenerCount() int {
	return len(d.docListeners)
}

func dropRemoved(regs []*registration) []*registration {
	out := regs[:0]
	for _, r := range regs {
		if !r.removed {
			out = append(out, r)
		}
	}
	return out
}

// Dispatch delivers evt to target, bubbles it through every ancestor and
// finally to document listeners. Activation events on a disabled control are
// swallowed the way a browser would. It reports whether any listener ran.
func (d *Document) Dispatch(target *html.Node, evt *Event) bool {
	if target == nil {
		return false
	}
	if isActivation(evt.Type) && IsDisabled(target) {
		return false
	}
	evt.Target = target

	ran := false
	for n := target; n != nil; n = n.Parent {
		evt.CurrentTarget = n
		if d.invoke(d.listeners[n], evt) {
			ran = true
		}
		if evt.stopped {
			return ran
		}
	}
	evt.CurrentTarget = nil
	if d.invoke(d.docListeners, evt) {
		ran = true
	}
	return ran
}

func (d *Document) invoke(regs []*registration, evt *Event) bool {
	ran := false
	// Listeners may add or remove registrations while running.
	snapshot := append([]*registration(nil), regs...)
	for _, r := range snapshot {
		if r.removed || r.event != evt.Type {
			continue
		}
		r.fn(evt)
		ran = true
		if evt.immediateStopped {
			break
		}
	}
	return ran
}

func isActivation(event string) bool {
	switch event {
	case EventClick, EventChange, EventInput:
		return true
	}
	return false
}

// Click dispatches a click on n.
func (d *Document) Click(n *html.Node) bool {
	return d.Dispatch(n, &Event{Type: EventClick})
}

// Input replaces the value of a text control and dispatches an input event.
func (d *Document) Input(n *html.Node, value string) bool {
	if n == nil || IsDisabled(n) {
		return false
	}
	if n.DataAtom == atom.Textarea {
		SetText(n, value)
	} else {
		SetAttr(n, "value", value)
	}
	return d.Dispatch(n, &Event{Type: EventInput, Value: value})
}

// Check selects a radio input, clears its siblings of the same name within
// root and dispatches a change event carrying the input's value.
func (d *Document) Check(root, n *html.Node) bool {
	if n == nil || IsDisabled(n) {
		return false
	}
	name, _ := Attr(n, "name")
	if name != "" && root != nil {
		for _, other := range QueryAll(root, fmt.Sprintf("input[name=%q]", name)) {
			RemoveAttr(other, "checked")
		}
	}
	SetAttr(n, "checked", "")
	value, _ := Attr(n, "value")
	return d.Dispatch(n, &Event{Type: EventChange, Value: value})
}

// KeyDown dispatches a keydown on the focused element, or on the body when
// nothing is focused.
func (d *Document) KeyDown(key string, ctrl bool) bool {
	target := d.focused
	if target == nil || !d.Contains(target) {
		target = d.body
	}
	return d.Dispatch(target, &Event{Type: EventKeyDown, Key: key, Ctrl: ctrl})
}

// Scroll sets n's scroll offset and dispatches a scroll event.
func (d *Document) Scroll(n *html.Node, top int) bool {
	if n == nil {
		return false
	}
	d.SetScrollTop(n, top)
	return d.Dispatch(n, &Event{Type: EventScroll, ScrollTop: top})
}

// ScrollTop returns n's scroll offset.
func (d *Document) ScrollTop(n *html.Node) int {
	return d.scroll[n]
}

// SetScrollTop sets n's scroll offset without dispatching.
func (d *Document) SetScrollTop(n *html.Node, top int) {
	if top <= 0 {
		delete(d.scroll, n)
		return
	}
	d.scroll[n] = top
}

// Focus moves focus to n.
func (d *Document) Focus(n *html.Node) {
	d.focused = n
}

// Blur clears focus.
func (d *Document) Blur() {
	d.focused = nil
}

// ActiveElement returns the focused node, or nil.
func (d *Document) ActiveElement() *html.Node {
	if d.focused != nil && !d.Contains(d.focused) {
		return nil
	}
	return d.focused
}

// Contains reports whether n is attached under the body.
func (d *Document) Contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.body {
			return true
		}
	}
	return false
}

// Release forgets listeners, scroll offsets and focus for n and its
// descendants. It does not detach n.
func (d *Document) Release(n *html.Node) {
	if n == nil {
		return
	}
	walk(n, func(c *html.Node) {
		delete(d.listeners, c)
		delete(d.scroll, c)
		if d.focused == c {
			d.focused = nil
		}
	})
}

// ReleaseListeners forgets only the listeners of n and its descendants.
func (d *Document) ReleaseListeners(n *html.Node) {
	if n == nil {
		return
	}
	walk(n, func(c *html.Node) { delete(d.listeners, c) })
}

// HTML renders the body's children.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
