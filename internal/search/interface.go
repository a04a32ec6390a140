// Package search narrows the catalog to films matching a free-text query.
package search

import "github.com/pders01/cinemaddict/internal/model"

// Searcher resolves a query to the set of matching film IDs. A nil set
// with a nil error means the query places no restriction.
type Searcher interface {
	Match(query string) (map[string]bool, error)
}

// Indexer keeps a searcher's view of the catalog current.
type Indexer interface {
	Reindex(films []model.Film) error
	Update(film model.Film) error
}

// Engine is a searcher that can be kept in sync with the films model.
type Engine interface {
	Searcher
	Indexer
}

// DebugStatser reports index size for the status line.
type DebugStatser interface {
	DocCount() (int, error)
}
