package tui

// truncateEnd cuts header titles and the error line to limit runes.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

// truncateMiddle keeps both ends of s around a single ellipsis. The backend
// label (database path or endpoint) and the selected comment row use it so
// the file name or the comment's end stays visible.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	left := (limit - 1) / 2
	right := limit - 1 - left
	return string(r[:left]) + "…" + string(r[n-right:])
}
