package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/cinemaddict/internal/model"
)

// field boosts, highest first
var boosts = []struct {
	field string
	boost float64
}{
	{"title", 4.0},
	{"alternative_title", 3.0},
	{"director", 2.0},
	{"actors", 2.0},
	{"writers", 1.5},
	{"genres", 1.5},
	{"description", 1.0},
}

type bleveEngine struct {
	idx bleve.Index
}

// NewBleveEngine creates an in-memory index. The catalog is small and
// always reloaded from the service, so nothing is written to disk.
func NewBleveEngine() (Engine, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &bleveEngine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = simple.Name

	dm := bleve.NewDocumentMapping()
	for _, b := range boosts {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = simple.Name
		fm.Store = false
		fm.IncludeTermVectors = false
		dm.AddFieldMappingsAt(b.field, fm)
	}

	im.DefaultMapping = dm
	return im
}

func document(f model.Film) map[string]any {
	return map[string]any{
		"title":             f.Info.Title,
		"alternative_title": f.Info.AlternativeTitle,
		"director":          f.Info.Director,
		"actors":            strings.Join(f.Info.Actors, " "),
		"writers":           strings.Join(f.Info.Writers, " "),
		"genres":            strings.Join(f.Info.Genres, " "),
		"description":       f.Info.Description,
	}
}

// Reindex replaces the indexed catalog with films.
func (b *bleveEngine) Reindex(films []model.Film) error {
	keep := make(map[string]bool, len(films))
	batch := b.idx.NewBatch()
	for _, f := range films {
		keep[f.ID] = true
		if err := batch.Index(f.ID, document(f)); err != nil {
			return err
		}
	}

	stale, err := b.allIDs()
	if err != nil {
		return err
	}
	for _, id := range stale {
		if !keep[id] {
			batch.Delete(id)
		}
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Update(f model.Film) error {
	return b.idx.Index(f.ID, document(f))
}

// Match requires every query term to hit at least one field, either as a
// full token or as a prefix.
func (b *bleveEngine) Match(query string) (map[string]bool, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	perTerm := make([]bleveQuery.Query, 0, len(terms))
	for _, term := range terms {
		var qs []bleveQuery.Query
		for _, f := range boosts {
			qm := bleve.NewMatchQuery(term)
			qm.SetField(f.field)
			qm.SetBoost(f.boost)
			qs = append(qs, qm)

			qp := bleve.NewPrefixQuery(term)
			qp.SetField(f.field)
			qp.SetBoost(f.boost * 0.9)
			qs = append(qs, qp)
		}
		perTerm = append(perTerm, bleve.NewDisjunctionQuery(qs...))
	}

	total, err := b.DocCount()
	if err != nil {
		return nil, err
	}
	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(perTerm...), total, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(res.Hits))
	for _, h := range res.Hits {
		out[h.ID] = true
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

func (b *bleveEngine) allIDs() ([]string, error) {
	total, err := b.DocCount()
	if err != nil || total == 0 {
		return nil, err
	}
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), total, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
