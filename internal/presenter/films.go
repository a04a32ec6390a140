package presenter

import (
	"context"

	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/search"
	"github.com/pders01/cinemaddict/internal/view"
)

// DefaultPageSize is how many cards each "show more" step reveals.
const DefaultPageSize = 5

// FilmsPresenterConfig wires the board to its models.
type FilmsPresenterConfig struct {
	Host       *render.Host
	Container  *dom.Node
	Films      *model.FilmsModel
	Comments   *model.CommentsModel
	Filter     *model.FilterModel
	Predicates model.Predicates
	// Search restricts the list to films matching the filter model's query.
	// Nil disables searching.
	Search   search.Searcher
	PageSize int
	Context  context.Context
	OnError  ErrorFunc
}

// FilmsPresenter owns the film board: sort bar, paginated card list and
// the single open popup.
type FilmsPresenter struct {
	cfg FilmsPresenterConfig

	section       *view.FilmSectionView
	list          *view.FilmListView
	listContainer *view.FilmListContainerView
	sortView      *view.SortView
	showMore      *view.ShowMoreButtonView
	noFilms       *view.NoFilmsView
	loading       *view.LoadingView
	loadError     *view.LoadErrorView

	presenters    map[string]*FilmPresenter
	open          *FilmPresenter
	renderedCount int
	sortType      model.SortType
}

// NewFilmsPresenter subscribes to the models. Call Init to mount the board.
func NewFilmsPresenter(cfg FilmsPresenterConfig) *FilmsPresenter {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Predicates == nil {
		cfg.Predicates = model.FilterPredicates
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	p := &FilmsPresenter{
		cfg:           cfg,
		presenters:    make(map[string]*FilmPresenter),
		renderedCount: cfg.PageSize,
		sortType:      model.SortDefault,
	}
	cfg.Films.Subscribe(p.handleModelEvent)
	cfg.Comments.Subscribe(p.handleCommentsEvent)
	cfg.Filter.Subscribe(p.handleFilterEvent)
	return p
}

// Init mounts the board section with the loading message.
func (p *FilmsPresenter) Init() {
	p.section = view.NewFilmSectionView(p.cfg.Host)
	mustRender(p.section, p.cfg.Container, render.BeforeEnd)
	p.loading = view.NewLoadingView(p.cfg.Host)
	mustRender(p.loading, p.section.Element(), render.BeforeEnd)
}

// SortType returns the active sort.
func (p *FilmsPresenter) SortType() model.SortType { return p.sortType }

// RenderedCount returns how many cards the list currently shows.
func (p *FilmsPresenter) RenderedCount() int { return len(p.presenters) }

// Presenter returns the presenter owning the card of film id.
func (p *FilmsPresenter) Presenter(id string) (*FilmPresenter, bool) {
	fp, ok := p.presenters[id]
	return fp, ok
}

// Open returns the presenter whose popup is attached, or nil.
func (p *FilmsPresenter) Open() *FilmPresenter {
	if p.open != nil && p.open.Mode() == ModeOpen {
		return p.open
	}
	return nil
}

// Visible computes the list the board shows: the active filter, then the
// search restriction, then the active sort.
func (p *FilmsPresenter) Visible() []model.Film {
	films := p.cfg.Predicates.Apply(p.cfg.Films.Films(), p.cfg.Filter.Filter())

	if q := p.cfg.Filter.Query(); q != "" && p.cfg.Search != nil {
		match, err := p.cfg.Search.Match(q)
		if err != nil {
			p.report(wrapErr("search", err))
		} else if match != nil {
			kept := films[:0:0]
			for _, f := range films {
				if match[f.ID] {
					kept = append(kept, f)
				}
			}
			films = kept
		}
	}

	return model.Sorted(films, p.sortType)
}

// HandleViewAction turns a view interaction into a model call. The busy
// state is pushed right away and the call runs on the next tick so the
// busy frame is shown first. A failed call shakes whatever issued it.
func (p *FilmsPresenter) HandleViewAction(action UserAction, kind observable.UpdateKind, payload any) {
	ctx := p.cfg.Context

	switch action {
	case ActionUpdateFilm:
		update := payload.(model.FilmUpdate)
		if fp := p.owner(update.Film.ID); fp != nil {
			fp.SetSaving()
		}
		p.cfg.Host.Sched.Post(func() {
			if err := p.cfg.Films.UpdateFilm(ctx, kind, update); err != nil {
				p.abort(action, update.Film.ID, "", wrapErr("update "+update.Film.Info.Title, err))
			}
		})
	case ActionAddComment:
		post := payload.(model.CommentPost)
		if fp := p.owner(post.Film.ID); fp != nil {
			fp.SetSaving()
		}
		p.cfg.Host.Sched.Post(func() {
			if err := p.cfg.Comments.AddComment(ctx, kind, post); err != nil {
				p.abort(action, post.Film.ID, "", wrapErr("add comment", err))
			}
		})
	case ActionDeleteComment:
		removal := payload.(model.CommentRemoval)
		if fp := p.owner(removal.Film.ID); fp != nil {
			fp.SetDeleting(removal.CommentID)
		}
		p.cfg.Host.Sched.Post(func() {
			if err := p.cfg.Comments.DeleteComment(ctx, kind, removal); err != nil {
				p.abort(action, removal.Film.ID, removal.CommentID, wrapErr("delete comment", err))
			}
		})
	default:
		unknownAction(action)
	}
}

func (p *FilmsPresenter) abort(action UserAction, filmID, commentID string, err error) {
	p.report(err)
	if fp := p.owner(filmID); fp != nil {
		fp.SetAborting(action, commentID)
	}
}

// owner finds the presenter showing film id, preferring the open popup.
func (p *FilmsPresenter) owner(id string) *FilmPresenter {
	if open := p.Open(); open != nil && open.Film().ID == id {
		return open
	}
	return p.presenters[id]
}

func (p *FilmsPresenter) handleModelEvent(kind observable.UpdateKind, payload any) {
	switch kind {
	case observable.Patch:
		update := payload.(model.FilmUpdate)
		if fp := p.owner(update.Film.ID); fp != nil {
			fp.Init(update.Film, update.Scroll)
		}
	case observable.Minor:
		p.clearBoard(false, false)
		p.renderBoard()
	case observable.Major:
		p.clearBoard(true, true)
		p.renderBoard()
	case observable.Init:
		render.Remove(p.loading)
		p.loading = nil
		p.renderBoard()
	case observable.InitError:
		render.Remove(p.loading)
		p.loading = nil
		reason := "unknown error"
		if err, ok := payload.(error); ok {
			reason = err.Error()
		}
		p.loadError = view.NewLoadErrorView(p.cfg.Host, reason)
		mustRender(p.loadError, p.section.Element(), render.BeforeEnd)
	default:
		observable.Unreachable(kind)
	}
}

// Comment changes carry the film with its new comment list. Mirroring it
// into the films model re-renders through handleModelEvent.
func (p *FilmsPresenter) handleCommentsEvent(kind observable.UpdateKind, payload any) {
	update := payload.(model.FilmUpdate)
	if err := p.cfg.Films.SyncFilm(kind, update); err != nil {
		p.report(wrapErr("sync comments", err))
	}
}

func (p *FilmsPresenter) handleFilterEvent(kind observable.UpdateKind, _ any) {
	switch kind {
	case observable.Minor:
		p.clearBoard(false, false)
	case observable.Major:
		p.clearBoard(true, true)
	default:
		observable.Unreachable(kind)
	}
	p.renderBoard()
}

// handleModeChange enforces a single open popup.
func (p *FilmsPresenter) handleModeChange(opening *FilmPresenter) {
	for _, fp := range p.presenters {
		fp.ResetView()
	}
	if p.open != nil {
		p.open.ResetView()
	}
	p.open = opening
}

func (p *FilmsPresenter) handleSortTypeChange(t model.SortType) {
	if t == p.sortType {
		return
	}
	p.sortType = t
	p.clearBoard(true, false)
	p.renderBoard()
}

func (p *FilmsPresenter) handleShowMoreClick() {
	films := p.Visible()
	from := p.renderedCount
	to := min(len(films), from+p.cfg.PageSize)
	p.renderFilms(films[from:to])
	p.renderedCount = to
	if p.renderedCount >= len(films) {
		render.Remove(p.showMore)
		p.showMore = nil
	}
}

func (p *FilmsPresenter) newFilmPresenter(container *dom.Node) *FilmPresenter {
	return NewFilmPresenter(FilmPresenterConfig{
		Host:         p.cfg.Host,
		Container:    container,
		Comments:     p.cfg.Comments,
		Filter:       p.cfg.Filter.Filter,
		OnDataChange: p.HandleViewAction,
		OnModeChange: p.handleModeChange,
		OnError:      p.cfg.OnError,
		Context:      p.cfg.Context,
	})
}

func (p *FilmsPresenter) renderFilms(films []model.Film) {
	container := p.listContainer.Element()
	open := p.Open()
	for _, f := range films {
		if open != nil && open.Film().ID == f.ID {
			open.Attach(container)
			open.Init(f, open.PopupScroll())
			p.presenters[f.ID] = open
			continue
		}
		fp := p.newFilmPresenter(container)
		fp.Init(f, 0)
		p.presenters[f.ID] = fp
	}
}

func (p *FilmsPresenter) renderBoard() {
	films := p.Visible()
	count := len(films)

	if count == 0 {
		p.noFilms = view.NewNoFilmsView(p.cfg.Host, p.cfg.Filter.Filter(), p.cfg.Filter.Query() != "")
		mustRender(p.noFilms, p.section.Element(), render.BeforeEnd)
	} else {
		p.sortView = view.NewSortView(p.cfg.Host, p.sortType, p.handleSortTypeChange)
		mustRender(p.sortView, p.section.Element(), render.BeforeBegin)

		p.list = view.NewFilmListView(p.cfg.Host)
		mustRender(p.list, p.section.Element(), render.BeforeEnd)
		p.listContainer = view.NewFilmListContainerView(p.cfg.Host)
		mustRender(p.listContainer, p.list.Element(), render.BeforeEnd)

		p.renderedCount = max(p.cfg.PageSize, min(count, p.renderedCount))
		shown := min(count, p.renderedCount)
		p.renderFilms(films[:shown])

		if count > shown {
			p.showMore = view.NewShowMoreButtonView(p.cfg.Host, p.handleShowMoreClick)
			mustRender(p.showMore, p.list.Element(), render.BeforeEnd)
		}
	}

	// An open popup whose film left the list keeps showing the latest data.
	if open := p.Open(); open != nil {
		if _, listed := p.presenters[open.Film().ID]; !listed {
			if film, ok := p.cfg.Films.Film(open.Film().ID); ok {
				open.Init(film, open.PopupScroll())
			}
		}
	}
	debuglog.Debugf("board: %d of %d films shown, sort %s", len(p.presenters), count, p.sortType)
}

// clearBoard drops every card and board view. An open popup is kept alive
// with its card detached.
func (p *FilmsPresenter) clearBoard(resetRenderedCount, resetSortType bool) {
	open := p.Open()
	keepOpen := open != nil && !resetSortType
	for _, fp := range p.presenters {
		if keepOpen && fp == open {
			fp.DetachCard()
			continue
		}
		fp.Destroy()
	}
	if open != nil && !keepOpen {
		open.Destroy()
		p.open = nil
	}
	clear(p.presenters)

	render.Remove(p.sortView)
	render.Remove(p.noFilms)
	render.Remove(p.showMore)
	render.Remove(p.listContainer)
	render.Remove(p.list)
	render.Remove(p.loadError)
	p.sortView, p.noFilms, p.showMore, p.listContainer, p.list, p.loadError = nil, nil, nil, nil, nil, nil

	if resetRenderedCount {
		p.renderedCount = p.cfg.PageSize
	}
	if resetSortType {
		p.sortType = model.SortDefault
	}
}

func (p *FilmsPresenter) report(err error) {
	debuglog.Warnf("%v", err)
	if p.cfg.OnError != nil {
		p.cfg.OnError(err)
	}
}
