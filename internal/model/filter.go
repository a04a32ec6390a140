package model

import "github.com/pders01/cinemaddict/internal/observable"

// FilterType names a subset of the catalog.
type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterWatchlist FilterType = "watchlist"
	FilterHistory   FilterType = "history"
	FilterFavorites FilterType = "favorites"
)

// FilterTypes lists the filters in navigation order.
var FilterTypes = []FilterType{FilterAll, FilterWatchlist, FilterHistory, FilterFavorites}

// Title is the label shown in the navigation.
func (t FilterType) Title() string {
	switch t {
	case FilterAll:
		return "All movies"
	case FilterWatchlist:
		return "Watchlist"
	case FilterHistory:
		return "History"
	case FilterFavorites:
		return "Favorites"
	}
	return string(t)
}

// Predicate selects films.
type Predicate func(Film) bool

// Predicates maps each filter to its predicate.
type Predicates map[FilterType]Predicate

// FilterPredicates is the default table.
var FilterPredicates = Predicates{
	FilterAll:       func(Film) bool { return true },
	FilterWatchlist: func(f Film) bool { return f.UserDetails.Watchlist },
	FilterHistory:   func(f Film) bool { return f.UserDetails.AlreadyWatched },
	FilterFavorites: func(f Film) bool { return f.UserDetails.Favorite },
}

// Apply returns the films matching t. An unknown filter matches nothing.
func (p Predicates) Apply(films []Film, t FilterType) []Film {
	pred, ok := p[t]
	if !ok {
		return nil
	}
	out := make([]Film, 0, len(films))
	for _, f := range films {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// Count returns how many films match t.
func (p Predicates) Count(films []Film, t FilterType) int {
	pred, ok := p[t]
	if !ok {
		return 0
	}
	n := 0
	for _, f := range films {
		if pred(f) {
			n++
		}
	}
	return n
}

// FilterModel holds the active filter and search query. Both setters
// notify with the model's new FilterType.
type FilterModel struct {
	observable.Bus
	filter FilterType
	query  string
}

func NewFilterModel() *FilterModel {
	return &FilterModel{filter: FilterAll}
}

func (m *FilterModel) Filter() FilterType { return m.filter }
func (m *FilterModel) Query() string      { return m.query }

func (m *FilterModel) SetFilter(kind observable.UpdateKind, t FilterType) {
	m.filter = t
	m.Notify(kind, t)
}

func (m *FilterModel) SetQuery(kind observable.UpdateKind, q string) {
	m.query = q
	m.Notify(kind, m.filter)
}
