// Package view holds the catalog's components. Each one renders markup and
// forwards user interaction to callbacks supplied by its presenter.
package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
)

const descriptionLimit = 140

var esc = html.EscapeString

func formatDuration(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

func releaseYear(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006")
}

func releaseDate(d *time.Time) string {
	if d == nil {
		return "Unknown"
	}
	return d.Format("02 January 2006")
}

func commentDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// truncateEnd shortens s to max runes, ending in an ellipsis.
func truncateEnd(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return strings.TrimRightFunc(string(r[:max-1]), func(c rune) bool { return c == ' ' }) + "…"
}

func attrIf(cond bool, attr string) string {
	if cond {
		return " " + attr
	}
	return ""
}

func classIf(cond bool, class string) string {
	if cond {
		return " " + class
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func pluralComments(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", n)
}

// ControlSelector matches every user-details toggle in cards and popups.
// The data-control value is the filter the flag feeds.
const ControlSelector = "[data-control]"

// ToggleControl flips the user-details flag behind control. The kind is
// Minor when the active filter depends on that flag, since the film may
// leave the visible list, and Patch otherwise. An unknown control panics.
func ToggleControl(film model.Film, control, active model.FilterType) (model.UserDetails, observable.UpdateKind) {
	d := film.UserDetails
	switch control {
	case model.FilterWatchlist:
		d.Watchlist = !d.Watchlist
	case model.FilterHistory:
		d.AlreadyWatched = !d.AlreadyWatched
		if !d.AlreadyWatched {
			d.WatchingDate = nil
		}
	case model.FilterFavorites:
		d.Favorite = !d.Favorite
	default:
		panic(fmt.Sprintf("view: unknown control %q", control))
	}
	if control == active {
		return d, observable.Minor
	}
	return d, observable.Patch
}

func controlOf(e *dom.Event) (model.FilterType, bool) {
	v, ok := dom.Attr(e.Target, "data-control")
	return model.FilterType(v), ok && v != ""
}
