package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/cinemaddict/internal/api"
)

//go:embed sample.toml
var sampleTOML []byte

// LoadSample decodes the catalog bundled with the binary.
func LoadSample() (*Catalog, error) {
	return parseSample(sampleTOML)
}

func parseSample(data []byte) (*Catalog, error) {
	var file sampleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sample.toml: %w", err)
	}

	catalog := &Catalog{Comments: make(map[string][]api.Comment)}
	for _, f := range file.Films {
		film := api.Film{
			ID:       f.ID,
			Comments: []string{},
			FilmInfo: api.FilmInfo{
				Title:            f.Title,
				AlternativeTitle: f.AlternativeTitle,
				TotalRating:      f.TotalRating,
				Poster:           f.Poster,
				AgeRating:        f.AgeRating,
				Director:         f.Director,
				Writers:          f.Writers,
				Actors:           f.Actors,
				Release:          api.Release{Date: f.ReleaseDate, ReleaseCountry: f.ReleaseCountry},
				Duration:         f.Duration,
				Genre:            f.Genres,
				Description:      f.Description,
			},
			UserDetails: api.UserDetails{
				Watchlist:      f.Watchlist,
				AlreadyWatched: f.AlreadyWatched,
				WatchingDate:   f.WatchingDate,
				Favorite:       f.Favorite,
			},
		}
		for _, c := range f.Comments {
			film.Comments = append(film.Comments, c.ID)
			catalog.Comments[f.ID] = append(catalog.Comments[f.ID], api.Comment{
				ID:      c.ID,
				Author:  c.Author,
				Comment: c.Text,
				Emotion: c.Emotion,
				Date:    c.Date,
			})
		}
		catalog.Films = append(catalog.Films, film)
	}
	return catalog, nil
}

// ReadCatalogJSON decodes a Catalog dump.
func ReadCatalogJSON(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return &catalog, nil
}
