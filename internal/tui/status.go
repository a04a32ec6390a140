package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgLoading       = "Loading movies…"
	MsgSaving        = "Saving…"
	MsgDeleting      = "Deleting…"
	MsgNoResults     = "No results"
	MsgEmptyComment  = "Comment text is empty"
	MsgNoComment     = "No comment selected"
	MsgCommentAdded  = "Comment added"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgEmotion(e string) string {
	return fmt.Sprintf("Emotion: %s", e)
}
