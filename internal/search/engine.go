package search

import (
	"strings"
	"unicode"

	"github.com/pders01/cinemaddict/internal/model"
)

// ScanEngine matches by scanning every film. It needs no index and backs
// the bleve engine when that cannot be built.
type ScanEngine struct {
	films []model.Film
}

func NewScanEngine() *ScanEngine {
	return &ScanEngine{}
}

func (e *ScanEngine) Reindex(films []model.Film) error {
	e.films = append([]model.Film(nil), films...)
	return nil
}

func (e *ScanEngine) Update(f model.Film) error {
	for i := range e.films {
		if e.films[i].ID == f.ID {
			e.films[i] = f
			return nil
		}
	}
	e.films = append(e.films, f)
	return nil
}

func (e *ScanEngine) Match(query string) (map[string]bool, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	out := make(map[string]bool)
	for _, f := range e.films {
		if matchesAll(f, terms) {
			out[f.ID] = true
		}
	}
	return out, nil
}

func (e *ScanEngine) DocCount() (int, error) {
	return len(e.films), nil
}

func matchesAll(f model.Film, terms []string) bool {
	fields := []string{
		f.Info.Title,
		f.Info.AlternativeTitle,
		f.Info.Director,
		strings.Join(f.Info.Actors, " "),
		strings.Join(f.Info.Writers, " "),
		strings.Join(f.Info.Genres, " "),
		f.Info.Description,
	}
	for _, term := range terms {
		hit := false
		for _, text := range fields {
			if fieldHasPrefix(text, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// fieldHasPrefix reports whether any word of text starts with term.
func fieldHasPrefix(text, term string) bool {
	for _, word := range tokenize(text) {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return false
}

// tokenize breaks text into lower-cased searchable terms
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 { // Skip single chars
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}
