// Package model holds the catalog's data models. Each model owns its
// collection, calls the service for mutations and announces changes on its
// bus once its own state is consistent.
package model

import "time"

// Film is a catalog entry. Values are never changed in place; updates
// produce a new Film through the With* helpers.
type Film struct {
	ID          string
	Comments    []string
	Info        FilmInfo
	UserDetails UserDetails
}

type FilmInfo struct {
	Title            string
	AlternativeTitle string
	TotalRating      float64
	Poster           string
	AgeRating        int
	Director         string
	Writers          []string
	Actors           []string
	Release          Release
	Duration         int
	Genres           []string
	Description      string
}

// Release describes where and when a film came out. Date is nil when
// unknown.
type Release struct {
	Date    *time.Time
	Country string
}

type UserDetails struct {
	Watchlist      bool
	AlreadyWatched bool
	WatchingDate   *time.Time
	Favorite       bool
}

// WithUserDetails returns a copy of f carrying d.
func (f Film) WithUserDetails(d UserDetails) Film {
	f.UserDetails = d
	return f
}

// WithComments returns a copy of f with its own copy of ids.
func (f Film) WithComments(ids []string) Film {
	f.Comments = append([]string(nil), ids...)
	return f
}

// HasComment reports whether id belongs to f.
func (f Film) HasComment(id string) bool {
	for _, c := range f.Comments {
		if c == id {
			return true
		}
	}
	return false
}

// FilmUpdate is the payload of every film change: the authoritative film
// and the popup scroll offset to restore after re-rendering.
type FilmUpdate struct {
	Film   Film
	Scroll int
}
