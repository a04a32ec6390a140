package dom

import "golang.org/x/net/html"

const (
	EventClick   = "click"
	EventChange  = "change"
	EventInput   = "input"
	EventKeyDown = "keydown"
	EventScroll  = "scroll"
)

// Key names carried by keydown events.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

// Event is a dispatched interaction.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node
	Key           string
	Ctrl          bool
	Value         string
	ScrollTop     int

	defaultPrevented bool
	stopped          bool
	immediateStopped bool
}

func (e *Event) PreventDefault()        { e.defaultPrevented = true }
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.immediateStopped = true
}

// IsEscape reports an Escape keydown.
func (e *Event) IsEscape() bool {
	return e.Type == EventKeyDown && (e.Key == KeyEscape || e.Key == "Esc")
}

// IsCtrlEnter reports a Ctrl+Enter keydown.
func (e *Event) IsCtrlEnter() bool {
	return e.Type == EventKeyDown && e.Key == KeyEnter && e.Ctrl
}
