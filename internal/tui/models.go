package tui

type View int

const (
	ViewBoard View = iota
	ViewDetails
	ViewComment
	ViewSearch
)

func (v View) String() string {
	switch v {
	case ViewBoard:
		return "board"
	case ViewDetails:
		return "details"
	case ViewComment:
		return "comment"
	case ViewSearch:
		return "search"
	}
	return "unknown"
}
