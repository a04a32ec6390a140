package search

import (
	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
)

// New returns the bleve engine, or the scan engine if the index cannot be
// created.
func New() Engine {
	eng, err := NewBleveEngine()
	if err != nil {
		debuglog.Warnf("search: bleve index unavailable, falling back to scan: %v", err)
		return NewScanEngine()
	}
	return eng
}

// Follow keeps idx in step with films. It must be subscribed before the
// presenters so the index is current when they recompute the list.
func Follow(films *model.FilmsModel, idx Indexer) {
	films.Subscribe(func(kind observable.UpdateKind, payload any) {
		switch kind {
		case observable.Init:
			if err := idx.Reindex(films.Films()); err != nil {
				debuglog.Errorf("search: reindex failed: %v", err)
			}
		case observable.InitError:
			// Nothing was loaded, so the index stays empty.
		case observable.Patch, observable.Minor, observable.Major:
			if update, ok := payload.(model.FilmUpdate); ok {
				if err := idx.Update(update.Film); err != nil {
					debuglog.Errorf("search: update %s failed: %v", update.Film.ID, err)
				}
			}
		default:
			observable.Unreachable(kind)
		}
	})
}
