// Package presenter connects models to views. Presenters subscribe to
// model buses, build and reconcile views, and turn user interaction into
// model mutations.
package presenter

import (
	"fmt"

	"github.com/pders01/cinemaddict/internal/observable"
)

// Mode tracks whether a film's popup is attached.
type Mode int

const (
	ModeDefault Mode = iota
	ModeOpen
)

func (m Mode) String() string {
	if m == ModeOpen {
		return "OPEN"
	}
	return "DEFAULT"
}

// UserAction tags a mutation request from a view.
type UserAction int

const (
	ActionUpdateFilm UserAction = iota + 1
	ActionAddComment
	ActionDeleteComment
)

func (a UserAction) String() string {
	switch a {
	case ActionUpdateFilm:
		return "UPDATE_FILM"
	case ActionAddComment:
		return "ADD_COMMENT"
	case ActionDeleteComment:
		return "DELETE_COMMENT"
	}
	return fmt.Sprintf("UserAction(%d)", int(a))
}

func (a UserAction) valid() bool {
	return a >= ActionUpdateFilm && a <= ActionDeleteComment
}

func unknownAction(a UserAction) {
	panic(fmt.Sprintf("presenter: unknown user action %s", a))
}

// DataChangeFunc receives mutation requests from film presenters. payload
// is a model.FilmUpdate, model.CommentPost or model.CommentRemoval
// depending on action.
type DataChangeFunc func(action UserAction, kind observable.UpdateKind, payload any)

// ErrorFunc receives recoverable errors for display.
type ErrorFunc func(err error)
