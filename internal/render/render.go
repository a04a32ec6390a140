// Package render attaches component output to the host document and keeps
// stateful components' output consistent with their state.
package render

import (
	"errors"
	"reflect"
	"time"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/runtime"
)

// Position says where Render inserts output relative to the container.
type Position int

const (
	// BeforeEnd appends inside the container.
	BeforeEnd Position = iota
	// AfterBegin prepends inside the container.
	AfterBegin
	// BeforeBegin inserts as the container's previous sibling.
	BeforeBegin
	// AfterEnd inserts as the container's next sibling.
	AfterEnd
)

const (
	// ShakeClass is toggled on a node while its failure animation plays.
	ShakeClass = "shake"
	// DefaultShakeTimeout is how long the shake class stays on.
	DefaultShakeTimeout = 600 * time.Millisecond
)

var (
	ErrNoParent     = errors.New("render: container has no parent for sibling insertion")
	ErrNilComponent = errors.New("render: can't replace unexisting component")
	ErrDetached     = errors.New("render: replaced component is not attached")
)

// Host bundles what every view needs from its surroundings.
type Host struct {
	Doc          *dom.Document
	Sched        runtime.Scheduler
	ShakeTimeout time.Duration
}

// NewHost returns a host with the default shake timeout.
func NewHost(doc *dom.Document, sched runtime.Scheduler) *Host {
	return &Host{Doc: doc, Sched: sched, ShakeTimeout: DefaultShakeTimeout}
}

// Component is anything that owns one output node.
type Component interface {
	// Element returns the output node, rendering it on first use.
	Element() *dom.Node
	// RemoveElement detaches the node and forgets it.
	RemoveElement()
}

// Render inserts c's output relative to container.
func Render(c Component, container *dom.Node, pos Position) error {
	el := c.Element()
	dom.Detach(el)

	switch pos {
	case AfterBegin:
		container.InsertBefore(el, container.FirstChild)
	case BeforeBegin:
		if container.Parent == nil {
			return ErrNoParent
		}
		container.Parent.InsertBefore(el, container)
	case AfterEnd:
		if container.Parent == nil {
			return ErrNoParent
		}
		container.Parent.InsertBefore(el, container.NextSibling)
	default:
		container.AppendChild(el)
	}
	return nil
}

// Replace puts next's output where prev's output lives and detaches prev's
// node. prev keeps its cached node so callers can still Remove it.
func Replace(next, prev Component) error {
	if isNil(next) || isNil(prev) {
		return ErrNilComponent
	}
	old := prev.Element()
	parent := old.Parent
	if parent == nil {
		return ErrDetached
	}
	el := next.Element()
	dom.Detach(el)
	parent.InsertBefore(el, old)
	parent.RemoveChild(old)
	return nil
}

// Remove detaches c's output and releases everything it holds. A nil
// component is ignored.
func Remove(c Component) {
	if isNil(c) {
		return
	}
	c.RemoveElement()
}

func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
