package model

import (
	"context"
	"fmt"

	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/observable"
)

// FilmsModel owns the catalog. Subscribers receive InitError with the load
// error, Init with a nil payload, and FilmUpdate for every change.
type FilmsModel struct {
	observable.Bus
	service Service
	films   []Film
}

func NewFilmsModel(service Service) *FilmsModel {
	return &FilmsModel{service: service}
}

// Films returns a copy of the catalog in service order.
func (m *FilmsModel) Films() []Film {
	return append([]Film(nil), m.films...)
}

// Film looks up one film by ID.
func (m *FilmsModel) Film(id string) (Film, bool) {
	if i := m.indexOf(id); i >= 0 {
		return m.films[i], true
	}
	return Film{}, false
}

// Init loads the catalog. A failure is announced as InitError and
// returned wrapped in ErrLoadFailure.
func (m *FilmsModel) Init(ctx context.Context) error {
	remote, err := m.service.Films(ctx)
	if err != nil {
		debuglog.Errorf("films: load failed: %v", err)
		m.Notify(observable.InitError, err)
		return fmt.Errorf("load films: %w: %w", ErrLoadFailure, err)
	}

	films := make([]Film, 0, len(remote))
	for _, f := range remote {
		films = append(films, AdaptFilm(f))
	}
	m.films = films
	debuglog.Infof("films: loaded %d films", len(films))
	m.Notify(observable.Init, nil)
	return nil
}

// UpdateFilm sends update.Film to the service and, on success, mirrors the
// returned film and notifies kind with it.
func (m *FilmsModel) UpdateFilm(ctx context.Context, kind observable.UpdateKind, update FilmUpdate) error {
	if m.indexOf(update.Film.ID) < 0 {
		return fmt.Errorf("update film %q: %w", update.Film.ID, ErrNotFound)
	}

	resp, err := m.service.UpdateFilm(ctx, FilmToRemote(update.Film))
	if err != nil {
		debuglog.Warnf("films: update %s rejected: %v", update.Film.ID, err)
		return fmt.Errorf("update film %q: %w: %w", update.Film.ID, ErrMutationRejected, err)
	}

	// The slice may have changed while the call was in flight.
	updated := AdaptFilm(resp)
	i := m.indexOf(updated.ID)
	if i < 0 {
		return fmt.Errorf("update film %q: %w", updated.ID, ErrNotFound)
	}
	m.replace(i, updated)
	m.Notify(kind, FilmUpdate{Film: updated, Scroll: update.Scroll})
	return nil
}

// SyncFilm mirrors a film the service already returned, for example after
// a comment mutation, and notifies kind. It makes no service call.
func (m *FilmsModel) SyncFilm(kind observable.UpdateKind, update FilmUpdate) error {
	i := m.indexOf(update.Film.ID)
	if i < 0 {
		return fmt.Errorf("sync film %q: %w", update.Film.ID, ErrNotFound)
	}
	m.replace(i, update.Film)
	m.Notify(kind, update)
	return nil
}

func (m *FilmsModel) replace(i int, f Film) {
	next := make([]Film, len(m.films))
	copy(next, m.films)
	next[i] = f
	m.films = next
}

func (m *FilmsModel) indexOf(id string) int {
	for i, f := range m.films {
		if f.ID == id {
			return i
		}
	}
	return -1
}
