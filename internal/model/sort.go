package model

import (
	"cmp"
	"slices"
)

// SortType orders the visible list.
type SortType string

const (
	SortDefault SortType = "default"
	SortDate    SortType = "date"
	SortRating  SortType = "rating"
)

// SortTypes lists the orders in sort-bar order.
var SortTypes = []SortType{SortDefault, SortDate, SortRating}

// Title is the label shown in the sort bar.
func (t SortType) Title() string {
	switch t {
	case SortDate:
		return "Sort by date"
	case SortRating:
		return "Sort by rating"
	}
	return "Sort by default"
}

// ByDate orders newer releases first. Films without a date go last and
// compare equal to each other.
func ByDate(a, b Film) int {
	da, db := a.Info.Release.Date, b.Info.Release.Date
	switch {
	case da == nil && db == nil:
		return 0
	case da == nil:
		return 1
	case db == nil:
		return -1
	}
	return db.Compare(*da)
}

// ByRating orders higher total rating first.
func ByRating(a, b Film) int {
	return cmp.Compare(b.Info.TotalRating, a.Info.TotalRating)
}

// Sorted returns a stably sorted copy of films. SortDefault keeps the
// input order.
func Sorted(films []Film, t SortType) []Film {
	out := append([]Film(nil), films...)
	switch t {
	case SortDate:
		slices.SortStableFunc(out, ByDate)
	case SortRating:
		slices.SortStableFunc(out, ByRating)
	}
	return out
}
