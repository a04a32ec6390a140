// Package api talks to the remote film catalog service and defines the
// records it exchanges.
package api

import "time"

// Film is a film record as the service sends it.
type Film struct {
	ID          string      `json:"id"`
	Comments    []string    `json:"comments"`
	FilmInfo    FilmInfo    `json:"film_info"`
	UserDetails UserDetails `json:"user_details"`
}

type FilmInfo struct {
	Title            string   `json:"title"`
	AlternativeTitle string   `json:"alternative_title"`
	TotalRating      float64  `json:"total_rating"`
	Poster           string   `json:"poster"`
	AgeRating        int      `json:"age_rating"`
	Director         string   `json:"director"`
	Writers          []string `json:"writers"`
	Actors           []string `json:"actors"`
	Release          Release  `json:"release"`
	Duration         int      `json:"duration"`
	Genre            []string `json:"genre"`
	Description      string   `json:"description"`
}

type Release struct {
	Date           *time.Time `json:"date"`
	ReleaseCountry string     `json:"release_country"`
}

type UserDetails struct {
	Watchlist      bool       `json:"watchlist"`
	AlreadyWatched bool       `json:"already_watched"`
	WatchingDate   *time.Time `json:"watching_date"`
	Favorite       bool       `json:"favorite"`
}

// Comment is a comment record as the service sends it.
type Comment struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
	Emotion string    `json:"emotion"`
}

// CommentDraft is the body of a new-comment request.
type CommentDraft struct {
	Comment string `json:"comment"`
	Emotion string `json:"emotion"`
}

// CommentPostResponse is returned after a comment is added: the updated
// film and the film's full comment set.
type CommentPostResponse struct {
	Movie    Film      `json:"movie"`
	Comments []Comment `json:"comments"`
}
