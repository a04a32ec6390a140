package presenter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/runtime"
	"github.com/pders01/cinemaddict/internal/view"
)

var errRemote = errors.New("remote unavailable")

// fakeService serves a fixed catalog. Setting fail makes the named call
// fail.
type fakeService struct {
	films    []api.Film
	comments map[string][]api.Comment
	fail     map[string]bool
	calls    []string
	nextID   int
}

func (s *fakeService) Films(context.Context) ([]api.Film, error) {
	s.calls = append(s.calls, "films")
	if s.fail["films"] {
		return nil, errRemote
	}
	return s.films, nil
}

func (s *fakeService) UpdateFilm(_ context.Context, f api.Film) (api.Film, error) {
	s.calls = append(s.calls, "update:"+f.ID)
	if s.fail["update"] {
		return api.Film{}, errRemote
	}
	for i := range s.films {
		if s.films[i].ID == f.ID {
			s.films[i] = f
		}
	}
	return f, nil
}

func (s *fakeService) Comments(_ context.Context, id string) ([]api.Comment, error) {
	s.calls = append(s.calls, "comments:"+id)
	if s.fail["comments"] {
		return nil, errRemote
	}
	return s.comments[id], nil
}

func (s *fakeService) AddComment(_ context.Context, id string, d api.CommentDraft) (api.CommentPostResponse, error) {
	s.calls = append(s.calls, "add:"+id)
	if s.fail["add"] {
		return api.CommentPostResponse{}, errRemote
	}
	s.nextID++
	s.comments[id] = append(s.comments[id], api.Comment{
		ID: fmt.Sprintf("n%d", s.nextID), Comment: d.Comment, Emotion: d.Emotion,
	})
	var movie api.Film
	for i := range s.films {
		if s.films[i].ID == id {
			s.films[i].Comments = nil
			for _, c := range s.comments[id] {
				s.films[i].Comments = append(s.films[i].Comments, c.ID)
			}
			movie = s.films[i]
		}
	}
	return api.CommentPostResponse{Movie: movie, Comments: s.comments[id]}, nil
}

func (s *fakeService) DeleteComment(_ context.Context, id string) error {
	s.calls = append(s.calls, "delete:"+id)
	if s.fail["delete"] {
		return errRemote
	}
	return nil
}

func catalog(n int) *fakeService {
	svc := &fakeService{comments: map[string][]api.Comment{}, fail: map[string]bool{}}
	for i := 0; i < n; i++ {
		id := fmt.Sprint(i)
		release := time.Date(2000+i, 1, 1, 0, 0, 0, 0, time.UTC)
		f := api.Film{ID: id}
		f.FilmInfo.Title = "Film " + id
		f.FilmInfo.TotalRating = float64(i)
		f.FilmInfo.Release.Date = &release
		cid := "c" + id
		f.Comments = []string{cid}
		svc.comments[id] = []api.Comment{{ID: cid, Author: "Tim", Comment: "fine", Emotion: "smile"}}
		svc.films = append(svc.films, f)
	}
	return svc
}

type fixture struct {
	t        *testing.T
	sched    *runtime.Manual
	doc      *dom.Document
	host     *render.Host
	main     *dom.Node
	svc      *fakeService
	films    *model.FilmsModel
	comments *model.CommentsModel
	filter   *model.FilterModel
	board    *FilmsPresenter
	errs     []error
}

func newFixture(t *testing.T, svc *fakeService) *fixture {
	t.Helper()
	f := &fixture{t: t, sched: runtime.NewManual(), doc: dom.NewDocument(), svc: svc}
	f.host = render.NewHost(f.doc, f.sched)
	f.main = dom.MustParse(`<main class="main"></main>`)
	f.doc.Body().AppendChild(f.main)

	f.films = model.NewFilmsModel(svc)
	f.comments = model.NewCommentsModel(svc)
	f.filter = model.NewFilterModel()
	f.board = NewFilmsPresenter(FilmsPresenterConfig{
		Host:      f.host,
		Container: f.main,
		Films:     f.films,
		Comments:  f.comments,
		Filter:    f.filter,
		OnError:   func(err error) { f.errs = append(f.errs, err) },
	})
	f.board.Init()
	return f
}

func (f *fixture) load() {
	f.t.Helper()
	require.NoError(f.t, f.films.Init(context.Background()))
}

func (f *fixture) cards() []string {
	var ids []string
	for _, n := range dom.QueryAll(f.main, ".film-card") {
		id, _ := dom.Attr(n, "data-film-id")
		ids = append(ids, id)
	}
	return ids
}

func (f *fixture) card(id string) *dom.Node {
	return dom.Query(f.main, fmt.Sprintf(`.film-card[data-film-id=%q]`, id))
}

func (f *fixture) popup() *dom.Node {
	return dom.Query(f.doc.Body(), ".film-details")
}

func (f *fixture) open(id string) *FilmPresenter {
	f.t.Helper()
	card := f.card(id)
	require.NotNil(f.t, card, "card %s", id)
	f.doc.Click(dom.Query(card, ".film-card__link"))
	fp := f.board.Open()
	require.NotNil(f.t, fp)
	return fp
}

func TestBoardShowsLoadingThenFirstPage(t *testing.T) {
	f := newFixture(t, catalog(7))
	assert.Contains(t, dom.Text(f.main), "Loading...")

	f.load()
	assert.NotContains(t, dom.Text(f.main), "Loading...")
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, f.cards())
	require.NotNil(t, dom.Query(f.main, ".films-list__show-more"))

	sort := dom.Query(f.main, ".sort")
	require.NotNil(t, sort)
	assert.Equal(t, dom.Query(f.main, ".films"), sort.NextSibling, "sort bar sits before the board")
}

func TestShowMoreRevealsNextPageWithoutTouchingRenderedCards(t *testing.T) {
	f := newFixture(t, catalog(12))
	f.load()
	first := f.card("0")

	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	assert.Len(t, f.cards(), 10)
	assert.Same(t, first, f.card("0"))

	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	assert.Len(t, f.cards(), 12)
	assert.Nil(t, dom.Query(f.main, ".films-list__show-more"))
}

func TestInitErrorShowsLoadFailure(t *testing.T) {
	svc := catalog(2)
	svc.fail["films"] = true
	f := newFixture(t, svc)

	err := f.films.Init(context.Background())
	require.ErrorIs(t, err, model.ErrLoadFailure)
	assert.Contains(t, dom.Text(f.main), "Failed to load movies: remote unavailable")
	assert.NotContains(t, dom.Text(f.main), "Loading...")
}

func TestEmptyCatalogShowsMessage(t *testing.T) {
	f := newFixture(t, catalog(0))
	f.load()
	assert.Contains(t, dom.Text(f.main), "There are no movies in our database")
	assert.Nil(t, dom.Query(f.main, ".sort"))
}

func TestPatchReinitsOnlyTheOwningCard(t *testing.T) {
	f := newFixture(t, catalog(3))
	f.load()
	before := map[string]*dom.Node{"0": f.card("0"), "1": f.card("1"), "2": f.card("2")}

	f.doc.Click(dom.Query(f.card("1"), `[data-control="watchlist"]`))
	assert.Equal(t, 1, f.sched.Pending(), "model call waits for the next tick")
	f.sched.RunPending()

	assert.Contains(t, f.svc.calls, "update:1")
	assert.Same(t, before["0"], f.card("0"))
	assert.Same(t, before["2"], f.card("2"))
	assert.NotSame(t, before["1"], f.card("1"))
	assert.True(t, dom.HasClass(dom.Query(f.card("1"), `[data-control="watchlist"]`), "film-card__controls-item--active"))
	assert.Equal(t, []string{"0", "1", "2"}, f.cards(), "card keeps its position")
}

func TestMinorRebuildsListKeepingCountAndSort(t *testing.T) {
	svc := catalog(8)
	for i := range svc.films {
		svc.films[i].UserDetails.Watchlist = true
	}
	f := newFixture(t, svc)
	f.load()
	f.filter.SetFilter(observable.Major, model.FilterWatchlist)
	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	f.doc.Click(dom.Query(f.main, `[data-sort-type="rating"]`))
	require.Equal(t, model.SortRating, f.board.SortType())
	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	require.Len(t, f.cards(), 8)

	// Removing a film from the active filter is a minor update.
	f.doc.Click(dom.Query(f.card("7"), `[data-control="watchlist"]`))
	f.sched.RunPending()

	assert.Equal(t, model.SortRating, f.board.SortType())
	assert.Equal(t, []string{"6", "5", "4", "3", "2", "1", "0"}, f.cards())
}

func TestMajorResetsCountAndSort(t *testing.T) {
	f := newFixture(t, catalog(8))
	f.load()
	f.doc.Click(dom.Query(f.main, `[data-sort-type="date"]`))
	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	require.Len(t, f.cards(), 8)

	f.filter.SetFilter(observable.Major, model.FilterAll)
	assert.Equal(t, model.SortDefault, f.board.SortType())
	assert.Len(t, f.cards(), 5)
}

func TestSortChangeResetsCount(t *testing.T) {
	f := newFixture(t, catalog(8))
	f.load()
	f.doc.Click(dom.Query(f.main, ".films-list__show-more"))
	require.Len(t, f.cards(), 8)

	f.doc.Click(dom.Query(f.main, `[data-sort-type="date"]`))
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, f.cards())
}

func TestOpeningPopupClosesTheOtherFirst(t *testing.T) {
	f := newFixture(t, catalog(2))
	f.load()
	a := f.open("0")
	assert.Equal(t, ModeOpen, a.Mode())
	assert.True(t, dom.HasClass(f.doc.Body(), HideOverflowClass))

	b, _ := f.board.Presenter("1")
	f.doc.Click(dom.Query(f.card("1"), ".film-card__link"))

	assert.Equal(t, ModeDefault, a.Mode())
	assert.Equal(t, ModeOpen, b.Mode())
	assert.Len(t, dom.QueryAll(f.doc.Body(), ".film-details"), 1)
	assert.Same(t, b, f.board.Open())
}

func TestModeChangeBroadcastPrecedesAppend(t *testing.T) {
	f := newFixture(t, catalog(2))
	f.load()
	f.open("0")

	var popupsDuringBroadcast int
	var otherModeDuringBroadcast Mode
	other, _ := f.board.Presenter("0")
	fp := NewFilmPresenter(FilmPresenterConfig{
		Host:     f.host,
		Comments: f.comments,
		Filter:   f.filter.Filter,
		OnModeChange: func(opening *FilmPresenter) {
			f.board.handleModeChange(opening)
			popupsDuringBroadcast = len(dom.QueryAll(f.doc.Body(), ".film-details"))
			otherModeDuringBroadcast = other.Mode()
		},
		OnDataChange: f.board.HandleViewAction,
	})
	film, _ := f.films.Film("1")
	fp.Init(film, 0)
	fp.OpenPopup()

	assert.Zero(t, popupsDuringBroadcast)
	assert.Equal(t, ModeDefault, otherModeDuringBroadcast)
	assert.Equal(t, ModeOpen, fp.Mode())
	assert.Len(t, dom.QueryAll(f.doc.Body(), ".film-details"), 1)
}

func TestEscapeClosesPopup(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	fp := f.open("0")
	before := f.doc.DocumentListenerCount()

	f.doc.KeyDown(dom.KeyEscape, false)
	assert.Equal(t, ModeDefault, fp.Mode())
	assert.Nil(t, f.popup())
	assert.False(t, dom.HasClass(f.doc.Body(), HideOverflowClass))
	assert.Less(t, f.doc.DocumentListenerCount(), before)
}

func TestCloseButtonClosesPopup(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	fp := f.open("0")

	f.doc.Click(dom.Query(f.popup(), ".film-details__close-btn"))
	assert.Equal(t, ModeDefault, fp.Mode())
	assert.Nil(t, f.popup())
	assert.Zero(t, f.doc.DocumentListenerCount())
}

func TestFailedCommentsLoadShakesCardAndStaysClosed(t *testing.T) {
	svc := catalog(1)
	svc.fail["comments"] = true
	f := newFixture(t, svc)
	f.load()

	f.doc.Click(dom.Query(f.card("0"), ".film-card__link"))
	assert.Nil(t, f.board.Open())
	assert.Nil(t, f.popup())
	assert.True(t, dom.HasClass(f.card("0"), render.ShakeClass))
	require.Len(t, f.errs, 1)
	assert.ErrorIs(t, f.errs[0], model.ErrLoadFailure)

	f.sched.Advance(render.DefaultShakeTimeout)
	assert.False(t, dom.HasClass(f.card("0"), render.ShakeClass))
}

func TestFailedOpenKeepsOtherPopupComments(t *testing.T) {
	svc := catalog(2)
	f := newFixture(t, svc)
	f.load()
	fp := f.open("0")
	require.NotNil(t, dom.Query(f.popup(), view.CommentSelector("c0")))

	svc.fail["comments"] = true
	f.doc.Click(dom.Query(f.card("1"), ".film-card__link"))
	svc.fail["comments"] = false
	require.Same(t, fp, f.board.Open())
	assert.Equal(t, "0", f.comments.FilmID())

	f.doc.Click(dom.Query(f.popup(), "#watchlist"))
	f.sched.RunPending()

	assert.Len(t, dom.QueryAll(f.popup(), ".film-details__comment"), 1)
	assert.NotNil(t, dom.Query(f.popup(), view.CommentSelector("c0")))
	assert.Len(t, f.comments.Comments(), 1)
}

func TestAddCommentAppendsAndClearsDraft(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	f.open("0")

	f.doc.Check(f.popup(), dom.Query(f.popup(), "#emoji-puke"))
	f.doc.Input(dom.Query(f.popup(), ".film-details__comment-input"), "loved it")
	f.sched.RunPending()
	f.doc.KeyDown(dom.KeyEnter, true)

	assert.Equal(t, "Saving...", attr(dom.Query(f.popup(), ".film-details__comment-input"), "placeholder"))
	f.sched.RunPending()

	assert.Contains(t, f.svc.calls, "add:0")
	assert.Len(t, dom.QueryAll(f.popup(), ".film-details__comment"), 2)
	assert.Empty(t, dom.Text(dom.Query(f.popup(), ".film-details__comment-input")))
	assert.Equal(t, "2 comments", dom.Text(dom.Query(f.card("0"), ".film-card__comments")))
	assert.False(t, dom.IsDisabled(dom.Query(f.popup(), ".film-details__comment-input")))
}

func TestFailedAddShakesFormAndClearsBusyFlags(t *testing.T) {
	svc := catalog(1)
	svc.fail["add"] = true
	f := newFixture(t, svc)
	f.load()
	fp := f.open("0")

	f.doc.Check(f.popup(), dom.Query(f.popup(), "#emoji-smile"))
	f.doc.Input(dom.Query(f.popup(), ".film-details__comment-input"), "draft")
	f.sched.RunPending()
	f.doc.KeyDown(dom.KeyEnter, true)
	require.True(t, fp.Popup().State().IsSaving)
	f.sched.RunPending()

	assert.Len(t, f.comments.Comments(), 1)
	assert.True(t, dom.HasClass(dom.Query(f.popup(), view.NewCommentSelector), render.ShakeClass))
	assert.True(t, fp.Popup().State().IsDisabled, "stays busy while shaking")
	require.Len(t, f.errs, 1)
	assert.ErrorIs(t, f.errs[0], model.ErrMutationRejected)

	f.sched.Advance(render.DefaultShakeTimeout)
	state := fp.Popup().State()
	assert.False(t, state.IsDisabled)
	assert.False(t, state.IsSaving)
	assert.Equal(t, "draft", state.Comment, "draft survives the failure")
	assert.False(t, dom.IsDisabled(dom.Query(f.popup(), ".film-details__comment-input")))
	assert.False(t, dom.HasClass(dom.Query(f.popup(), view.NewCommentSelector), render.ShakeClass))
}

func TestDeleteCommentShowsDeletingThenRemoves(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	fp := f.open("0")

	f.doc.Click(dom.Query(f.popup(), ".film-details__comment-delete"))
	assert.Equal(t, "c0", fp.Popup().State().DeletingID)
	assert.Equal(t, "Deleting...", dom.Text(dom.Query(f.popup(), ".film-details__comment-delete")))

	f.sched.RunPending()
	assert.Contains(t, f.svc.calls, "delete:c0")
	assert.Empty(t, dom.QueryAll(f.popup(), ".film-details__comment"))
	assert.Equal(t, "0 comments", dom.Text(dom.Query(f.card("0"), ".film-card__comments")))
}

func TestFailedDeleteShakesCommentRow(t *testing.T) {
	svc := catalog(1)
	svc.fail["delete"] = true
	f := newFixture(t, svc)
	f.load()
	fp := f.open("0")

	f.doc.Click(dom.Query(f.popup(), ".film-details__comment-delete"))
	f.sched.RunPending()

	row := dom.Query(f.popup(), view.CommentSelector("c0"))
	require.NotNil(t, row)
	assert.True(t, dom.HasClass(row, render.ShakeClass))

	f.sched.Advance(render.DefaultShakeTimeout)
	assert.Empty(t, fp.Popup().State().DeletingID)
	assert.Equal(t, "Delete", dom.Text(dom.Query(f.popup(), ".film-details__comment-delete")))
}

func TestFailedCardUpdateShakesCard(t *testing.T) {
	svc := catalog(1)
	svc.fail["update"] = true
	f := newFixture(t, svc)
	f.load()

	f.doc.Click(dom.Query(f.card("0"), `[data-control="favorites"]`))
	f.sched.RunPending()

	assert.True(t, dom.HasClass(f.card("0"), render.ShakeClass))
	film, _ := f.films.Film("0")
	assert.False(t, film.UserDetails.Favorite)
}

func TestFailedPopupUpdateShakesControls(t *testing.T) {
	svc := catalog(1)
	svc.fail["update"] = true
	f := newFixture(t, svc)
	f.load()
	fp := f.open("0")

	f.doc.Click(dom.Query(f.popup(), "#favorite"))
	assert.True(t, fp.Popup().State().IsDisabled)
	f.sched.RunPending()

	assert.True(t, dom.HasClass(dom.Query(f.popup(), view.ControlsSelector), render.ShakeClass))
	f.sched.Advance(render.DefaultShakeTimeout)
	assert.False(t, fp.Popup().State().IsDisabled)
	assert.False(t, dom.IsDisabled(dom.Query(f.popup(), "#favorite")))
}

func TestPopupUpdateKeepsScroll(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	f.open("0")

	f.doc.Scroll(f.popup(), 240)
	f.sched.RunPending()
	f.doc.Click(dom.Query(f.popup(), "#watchlist"))
	f.sched.RunPending()

	assert.Equal(t, 240, f.doc.ScrollTop(f.popup()))
	assert.True(t, dom.HasClass(dom.Query(f.popup(), "#watchlist"), "film-details__control-button--active"))
}

func TestMinorKeepsPopupOpenWhenFilmLeavesList(t *testing.T) {
	svc := catalog(2)
	svc.films[0].UserDetails.Watchlist = true
	svc.films[1].UserDetails.Watchlist = true
	f := newFixture(t, svc)
	f.load()
	f.filter.SetFilter(observable.Major, model.FilterWatchlist)
	fp := f.open("0")

	f.doc.Click(dom.Query(f.popup(), "#watchlist"))
	f.sched.RunPending()

	assert.Equal(t, []string{"1"}, f.cards())
	assert.Same(t, fp, f.board.Open())
	require.NotNil(t, f.popup())
	assert.False(t, dom.HasClass(dom.Query(f.popup(), "#watchlist"), "film-details__control-button--active"))
}

func TestMajorClosesPopup(t *testing.T) {
	f := newFixture(t, catalog(2))
	f.load()
	fp := f.open("0")

	f.filter.SetFilter(observable.Major, model.FilterHistory)
	assert.Equal(t, ModeDefault, fp.Mode())
	assert.Nil(t, f.popup())
	assert.Nil(t, f.board.Open())
}

func TestPopupCardReattachesAfterMinor(t *testing.T) {
	svc := catalog(2)
	svc.films[0].UserDetails.Favorite = true
	svc.films[1].UserDetails.Favorite = true
	f := newFixture(t, svc)
	f.load()
	f.filter.SetFilter(observable.Major, model.FilterFavorites)
	fp := f.open("0")

	// Film 1 leaves the list; film 0 stays, with the popup still open.
	f.doc.Click(dom.Query(f.card("1"), `[data-control="favorites"]`))
	f.sched.RunPending()

	assert.Equal(t, []string{"0"}, f.cards())
	got, _ := f.board.Presenter("0")
	assert.Same(t, fp, got)
	assert.Equal(t, ModeOpen, fp.Mode())
}

func TestUnknownActionPanics(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	assert.PanicsWithValue(t, "presenter: unknown user action UserAction(42)", func() {
		f.board.HandleViewAction(UserAction(42), observable.Patch, nil)
	})
}

func TestSetAbortingUnknownActionPanics(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	fp, _ := f.board.Presenter("0")
	assert.Panics(t, func() { fp.SetAborting(UserAction(0), "") })
}

func TestUnknownUpdateKindPanics(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	assert.Panics(t, func() { f.board.handleModelEvent(observable.UpdateKind(99), nil) })
}

func TestDestroyReleasesListeners(t *testing.T) {
	f := newFixture(t, catalog(1))
	f.load()
	fp := f.open("0")
	card := f.card("0")

	fp.Destroy()
	assert.Nil(t, f.card("0"))
	assert.Nil(t, f.popup())
	assert.Zero(t, f.doc.ListenerCount(card))
	assert.Zero(t, f.doc.DocumentListenerCount())
}

func TestSearchRestrictsVisibleFilms(t *testing.T) {
	f := newFixture(t, catalog(3))
	f.board.cfg.Search = stubSearcher{"Film 1": {"1": true}}
	f.load()

	f.filter.SetQuery(observable.Major, "Film 1")
	assert.Equal(t, []string{"1"}, f.cards())

	f.filter.SetQuery(observable.Major, "nothing")
	assert.Contains(t, dom.Text(f.main), "There are no movies matching your search")
}

type stubSearcher map[string]map[string]bool

func (s stubSearcher) Match(q string) (map[string]bool, error) {
	if m, ok := s[q]; ok {
		return m, nil
	}
	return map[string]bool{}, nil
}

func TestFilterPresenterCountsAndSwitches(t *testing.T) {
	svc := catalog(3)
	svc.films[1].UserDetails.Watchlist = true
	f := newFixture(t, svc)
	fp := NewFilterPresenter(FilterPresenterConfig{
		Host: f.host, Container: f.main, Films: f.films, Filter: f.filter,
	})
	fp.Init()
	f.load()

	assert.Equal(t, []view.FilterItem{
		{Type: model.FilterAll, Count: 3},
		{Type: model.FilterWatchlist, Count: 1},
		{Type: model.FilterHistory, Count: 0},
		{Type: model.FilterFavorites, Count: 0},
	}, fp.Items())

	f.doc.Click(dom.Query(f.main, `[data-filter-type="watchlist"]`))
	assert.Equal(t, model.FilterWatchlist, f.filter.Filter())
	assert.Equal(t, []string{"1"}, f.cards())
	assert.Len(t, dom.QueryAll(f.main, ".main-navigation"), 1)
	assert.Same(t, f.main.FirstChild, dom.Query(f.main, ".main-navigation"))
}

func TestChromePresenterTracksRankAndCount(t *testing.T) {
	svc := catalog(12)
	for i := 0; i < 11; i++ {
		svc.films[i].UserDetails.AlreadyWatched = true
	}
	f := newFixture(t, svc)
	header := dom.MustParse(`<header class="header"></header>`)
	footer := dom.MustParse(`<section class="footer__statistics"></section>`)
	f.doc.Body().AppendChild(header)
	f.doc.Body().AppendChild(footer)

	cp := NewChromePresenter(f.host, header, footer, f.films)
	cp.Init()
	assert.Equal(t, "0 movies inside", dom.Text(dom.Query(footer, "p")))

	f.load()
	assert.Equal(t, "fan", dom.Text(dom.Query(header, ".profile__rating")))
	assert.Equal(t, "12 movies inside", dom.Text(dom.Query(footer, "p")))
	assert.Len(t, dom.QueryAll(header, ".profile"), 1)
}

func attr(n *dom.Node, key string) string {
	v, _ := dom.Attr(n, key)
	return v
}
