package storage

import (
	"time"

	"github.com/pders01/cinemaddict/internal/api"
)

// filmRecord is the stored form of a film. Position keeps the catalog in
// import order since bbolt iterates keys bytewise.
type filmRecord struct {
	Position int      `json:"position"`
	Film     api.Film `json:"film"`
}

type commentRecord struct {
	FilmID  string      `json:"film_id"`
	Comment api.Comment `json:"comment"`
}

// Catalog is a full data set: films plus their comments keyed by film ID.
// It is the shape of JSON dumps accepted by ImportJSON.
type Catalog struct {
	Films    []api.Film               `json:"films"`
	Comments map[string][]api.Comment `json:"comments"`
}

// sampleFile mirrors sample.toml.
type sampleFile struct {
	Films []sampleFilm `toml:"films"`
}

type sampleFilm struct {
	ID               string          `toml:"id"`
	Title            string          `toml:"title"`
	AlternativeTitle string          `toml:"alternative_title"`
	TotalRating      float64         `toml:"total_rating"`
	Poster           string          `toml:"poster"`
	AgeRating        int             `toml:"age_rating"`
	Director         string          `toml:"director"`
	Writers          []string        `toml:"writers"`
	Actors           []string        `toml:"actors"`
	ReleaseDate      *time.Time      `toml:"release_date"`
	ReleaseCountry   string          `toml:"release_country"`
	Duration         int             `toml:"duration"`
	Genres           []string        `toml:"genres"`
	Description      string          `toml:"description"`
	Watchlist        bool            `toml:"watchlist"`
	AlreadyWatched   bool            `toml:"already_watched"`
	WatchingDate     *time.Time      `toml:"watching_date"`
	Favorite         bool            `toml:"favorite"`
	Comments         []sampleComment `toml:"comments"`
}

type sampleComment struct {
	ID      string    `toml:"id"`
	Author  string    `toml:"author"`
	Text    string    `toml:"text"`
	Emotion string    `toml:"emotion"`
	Date    time.Time `toml:"date"`
}
