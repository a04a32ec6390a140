package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/observable"
)

type fakeService struct {
	films    []api.Film
	comments map[string][]api.Comment
	err      error
	calls    []string
}

func (s *fakeService) Films(context.Context) ([]api.Film, error) {
	s.calls = append(s.calls, "films")
	return s.films, s.err
}

func (s *fakeService) UpdateFilm(_ context.Context, f api.Film) (api.Film, error) {
	s.calls = append(s.calls, "update:"+f.ID)
	if s.err != nil {
		return api.Film{}, s.err
	}
	return f, nil
}

func (s *fakeService) Comments(_ context.Context, id string) ([]api.Comment, error) {
	s.calls = append(s.calls, "comments:"+id)
	return s.comments[id], s.err
}

func (s *fakeService) AddComment(_ context.Context, id string, d api.CommentDraft) (api.CommentPostResponse, error) {
	s.calls = append(s.calls, "add:"+id)
	if s.err != nil {
		return api.CommentPostResponse{}, s.err
	}
	comments := append(s.comments[id], api.Comment{ID: "new", Comment: d.Comment, Emotion: d.Emotion})
	movie := api.Film{ID: id}
	for _, c := range comments {
		movie.Comments = append(movie.Comments, c.ID)
	}
	return api.CommentPostResponse{Movie: movie, Comments: comments}, nil
}

func (s *fakeService) DeleteComment(_ context.Context, id string) error {
	s.calls = append(s.calls, "delete:"+id)
	return s.err
}

type recorded struct {
	kind    observable.UpdateKind
	payload any
}

func record(b *observable.Bus) *[]recorded {
	var got []recorded
	b.Subscribe(func(k observable.UpdateKind, p any) {
		got = append(got, recorded{k, p})
	})
	return &got
}

func date(year int) *time.Time {
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilmsModelInit(t *testing.T) {
	svc := &fakeService{films: []api.Film{{ID: "0"}, {ID: "1"}}}
	m := NewFilmsModel(svc)
	events := record(&m.Bus)

	require.NoError(t, m.Init(context.Background()))

	assert.Len(t, m.Films(), 2)
	require.Len(t, *events, 1)
	assert.Equal(t, observable.Init, (*events)[0].kind)
}

func TestFilmsModelInitFailure(t *testing.T) {
	boom := errors.New("offline")
	m := NewFilmsModel(&fakeService{err: boom})
	events := record(&m.Bus)

	err := m.Init(context.Background())

	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.ErrorIs(t, err, boom)
	require.Len(t, *events, 1)
	assert.Equal(t, observable.InitError, (*events)[0].kind)
	assert.Empty(t, m.Films())
}

func TestFilmsAccessorReturnsCopy(t *testing.T) {
	m := NewFilmsModel(&fakeService{films: []api.Film{{ID: "0"}}})
	require.NoError(t, m.Init(context.Background()))

	films := m.Films()
	films[0].ID = "changed"

	got, ok := m.Film("0")
	assert.True(t, ok)
	assert.Equal(t, "0", got.ID)
}

func TestUpdateFilmUnknownIDMakesNoRemoteCall(t *testing.T) {
	svc := &fakeService{films: []api.Film{{ID: "0"}}}
	m := NewFilmsModel(svc)
	require.NoError(t, m.Init(context.Background()))
	svc.calls = nil

	err := m.UpdateFilm(context.Background(), observable.Patch, FilmUpdate{Film: Film{ID: "missing"}})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, svc.calls)
}

func TestUpdateFilmMirrorsBeforeNotifying(t *testing.T) {
	svc := &fakeService{films: []api.Film{{ID: "0"}, {ID: "1"}}}
	m := NewFilmsModel(svc)
	require.NoError(t, m.Init(context.Background()))

	var seen Film
	m.Subscribe(func(k observable.UpdateKind, p any) {
		assert.Equal(t, observable.Patch, k)
		update := p.(FilmUpdate)
		assert.Equal(t, 120, update.Scroll)
		seen, _ = m.Film(update.Film.ID)
	})

	film, _ := m.Film("1")
	film = film.WithUserDetails(UserDetails{Favorite: true})
	require.NoError(t, m.UpdateFilm(context.Background(), observable.Patch, FilmUpdate{Film: film, Scroll: 120}))

	assert.True(t, seen.UserDetails.Favorite, "subscriber sees the mirrored film")
}

func TestUpdateFilmRejectedLeavesState(t *testing.T) {
	svc := &fakeService{films: []api.Film{{ID: "0"}}}
	m := NewFilmsModel(svc)
	require.NoError(t, m.Init(context.Background()))
	events := record(&m.Bus)
	svc.err = errors.New("500")

	film, _ := m.Film("0")
	err := m.UpdateFilm(context.Background(), observable.Patch,
		FilmUpdate{Film: film.WithUserDetails(UserDetails{Watchlist: true})})

	assert.ErrorIs(t, err, ErrMutationRejected)
	got, _ := m.Film("0")
	assert.False(t, got.UserDetails.Watchlist)
	assert.Empty(t, *events)
}

func TestSyncFilm(t *testing.T) {
	svc := &fakeService{films: []api.Film{{ID: "0"}}}
	m := NewFilmsModel(svc)
	require.NoError(t, m.Init(context.Background()))
	svc.calls = nil
	events := record(&m.Bus)

	film := Film{ID: "0", Comments: []string{"a"}}
	require.NoError(t, m.SyncFilm(observable.Patch, FilmUpdate{Film: film}))

	got, _ := m.Film("0")
	assert.Equal(t, []string{"a"}, got.Comments)
	assert.Len(t, *events, 1)
	assert.Empty(t, svc.calls)
	assert.ErrorIs(t, m.SyncFilm(observable.Patch, FilmUpdate{Film: Film{ID: "x"}}), ErrNotFound)
}

func TestCommentsModelLoadAndAdd(t *testing.T) {
	svc := &fakeService{comments: map[string][]api.Comment{
		"0": {{ID: "c1", Comment: "fine", Emotion: "smile"}},
	}}
	m := NewCommentsModel(svc)
	events := record(&m.Bus)

	require.NoError(t, m.Init(context.Background(), "0"))
	require.Len(t, m.Comments(), 1)
	assert.Equal(t, "fine", m.Comments()[0].Text)

	film := Film{ID: "0", Comments: []string{"c1"}}
	post := CommentPost{Film: film, Draft: CommentDraft{Text: "great", Emotion: EmotionPuke}, Scroll: 40}
	require.NoError(t, m.AddComment(context.Background(), observable.Patch, post))

	assert.Len(t, m.Comments(), 2)
	require.Len(t, *events, 1)
	update := (*events)[0].payload.(FilmUpdate)
	assert.Equal(t, []string{"c1", "new"}, update.Film.Comments)
	assert.Equal(t, 40, update.Scroll)
}

func TestFailedAddCommentKeepsLength(t *testing.T) {
	svc := &fakeService{comments: map[string][]api.Comment{"0": {{ID: "c1"}}}}
	m := NewCommentsModel(svc)
	require.NoError(t, m.Init(context.Background(), "0"))
	events := record(&m.Bus)
	svc.err = errors.New("400")

	err := m.AddComment(context.Background(), observable.Patch,
		CommentPost{Film: Film{ID: "0"}, Draft: CommentDraft{Text: "x", Emotion: EmotionSmile}})

	assert.ErrorIs(t, err, ErrMutationRejected)
	assert.Len(t, m.Comments(), 1)
	assert.Empty(t, *events)
}

func TestAddCommentToUnloadedFilm(t *testing.T) {
	svc := &fakeService{}
	m := NewCommentsModel(svc)

	err := m.AddComment(context.Background(), observable.Patch, CommentPost{Film: Film{ID: "9"}})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, svc.calls)
}

func TestDeleteComment(t *testing.T) {
	svc := &fakeService{comments: map[string][]api.Comment{"0": {{ID: "c1"}, {ID: "c2"}}}}
	m := NewCommentsModel(svc)
	require.NoError(t, m.Init(context.Background(), "0"))
	events := record(&m.Bus)

	film := Film{ID: "0", Comments: []string{"c1", "c2"}}
	require.NoError(t, m.DeleteComment(context.Background(), observable.Patch, CommentRemoval{Film: film, CommentID: "c1"}))

	require.Len(t, m.Comments(), 1)
	assert.Equal(t, "c2", m.Comments()[0].ID)
	update := (*events)[0].payload.(FilmUpdate)
	assert.Equal(t, []string{"c2"}, update.Film.Comments)
	assert.Equal(t, []string{"c1", "c2"}, film.Comments, "input film untouched")

	err := m.DeleteComment(context.Background(), observable.Patch, CommentRemoval{Film: film, CommentID: "c1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsInitFailureKeepsLoadedFilm(t *testing.T) {
	svc := &fakeService{comments: map[string][]api.Comment{"0": {{ID: "c1"}}}}
	m := NewCommentsModel(svc)
	require.NoError(t, m.Init(context.Background(), "0"))

	svc.err = errors.New("timeout")
	err := m.Init(context.Background(), "1")

	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Equal(t, "0", m.FilmID())
	require.Len(t, m.Comments(), 1)
	assert.Equal(t, "c1", m.Comments()[0].ID)
}

func TestCommentsInitFailureOnFirstLoadLeavesEmpty(t *testing.T) {
	m := NewCommentsModel(&fakeService{err: errors.New("timeout")})

	err := m.Init(context.Background(), "0")

	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Empty(t, m.FilmID())
	assert.Empty(t, m.Comments())
}

func TestSortByDateNullsLast(t *testing.T) {
	films := []Film{
		{ID: "2021", Info: FilmInfo{Release: Release{Date: date(2021)}}},
		{ID: "none"},
		{ID: "2019", Info: FilmInfo{Release: Release{Date: date(2019)}}},
	}

	sorted := Sorted(films, SortDate)

	assert.Equal(t, []string{"2021", "2019", "none"}, ids(sorted))
	assert.Equal(t, []string{"2021", "none", "2019"}, ids(films), "input untouched")
	assert.Zero(t, ByDate(Film{}, Film{}))
}

func TestSortByRatingIsStable(t *testing.T) {
	films := []Film{
		{ID: "a", Info: FilmInfo{TotalRating: 7}},
		{ID: "b", Info: FilmInfo{TotalRating: 9}},
		{ID: "c", Info: FilmInfo{TotalRating: 7}},
		{ID: "d", Info: FilmInfo{TotalRating: 7}},
	}

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(Sorted(films, SortRating)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Sorted(films, SortDefault)))
}

func TestFilterPredicates(t *testing.T) {
	films := []Film{
		{ID: "w", UserDetails: UserDetails{Watchlist: true}},
		{ID: "h", UserDetails: UserDetails{AlreadyWatched: true, Favorite: true}},
		{ID: "n"},
	}

	assert.Equal(t, []string{"w", "h", "n"}, ids(FilterPredicates.Apply(films, FilterAll)))
	assert.Equal(t, []string{"w"}, ids(FilterPredicates.Apply(films, FilterWatchlist)))
	assert.Equal(t, []string{"h"}, ids(FilterPredicates.Apply(films, FilterHistory)))
	assert.Equal(t, 1, FilterPredicates.Count(films, FilterFavorites))
	assert.Empty(t, FilterPredicates.Apply(films, FilterType("bogus")))
}

func TestFilterModelNotifies(t *testing.T) {
	m := NewFilterModel()
	events := record(&m.Bus)

	m.SetFilter(observable.Major, FilterHistory)
	m.SetQuery(observable.Minor, "sky")

	assert.Equal(t, FilterHistory, m.Filter())
	assert.Equal(t, "sky", m.Query())
	require.Len(t, *events, 2)
	assert.Equal(t, observable.Major, (*events)[0].kind)
	assert.Equal(t, FilterHistory, (*events)[1].payload)
}

func TestUserRank(t *testing.T) {
	watched := func(n int) []Film {
		films := make([]Film, n+3)
		for i := 0; i < n; i++ {
			films[i].UserDetails.AlreadyWatched = true
		}
		return films
	}

	assert.Equal(t, "", UserRank(watched(0)))
	assert.Equal(t, "novice", UserRank(watched(10)))
	assert.Equal(t, "fan", UserRank(watched(11)))
	assert.Equal(t, "fan", UserRank(watched(20)))
	assert.Equal(t, "movie buff", UserRank(watched(21)))
}

func TestAdapterRoundTrip(t *testing.T) {
	remote := api.Film{
		ID:       "7",
		Comments: []string{"a", "b"},
		FilmInfo: api.FilmInfo{
			Title:   "The Dance of Life",
			Genre:   []string{"Musical"},
			Release: api.Release{Date: date(1929), ReleaseCountry: "USA"},
		},
		UserDetails: api.UserDetails{Watchlist: true, AlreadyWatched: true, WatchingDate: date(2020)},
	}

	film := AdaptFilm(remote)
	assert.Equal(t, "USA", film.Info.Release.Country)
	assert.Equal(t, []string{"Musical"}, film.Info.Genres)

	back := FilmToRemote(film)
	assert.Equal(t, remote.ID, back.ID)
	assert.Equal(t, remote.Comments, back.Comments)
	assert.Equal(t, remote.UserDetails, back.UserDetails)
	assert.NotNil(t, back.FilmInfo.Writers, "empty lists encode as arrays")

	c := AdaptComment(api.Comment{ID: "c", Comment: "hi", Emotion: "angry"})
	assert.Equal(t, EmotionAngry, c.Emotion)
	assert.Equal(t, "hi", c.Text)
	assert.True(t, c.Emotion.Valid())
	assert.False(t, Emotion("meh").Valid())
}

func ids(films []Film) []string {
	out := make([]string, 0, len(films))
	for _, f := range films {
		out = append(out, f.ID)
	}
	return out
}
