package presenter

import (
	"context"

	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/view"
)

// HideOverflowClass is set on the body while a popup is open.
const HideOverflowClass = "hide-overflow"

// FilmPresenterConfig wires a FilmPresenter to its surroundings.
type FilmPresenterConfig struct {
	Host      *render.Host
	Container *dom.Node
	Comments  *model.CommentsModel
	// Filter reports the active filter, which decides the update kind of
	// control toggles.
	Filter       func() model.FilterType
	OnDataChange DataChangeFunc
	// OnModeChange runs right before the presenter's popup is attached. It
	// must reset every presenter, including the caller.
	OnModeChange func(opening *FilmPresenter)
	OnError      ErrorFunc
	Context      context.Context
}

// FilmPresenter owns one film's card and, while open, its popup.
type FilmPresenter struct {
	cfg       FilmPresenterConfig
	container *dom.Node
	film      model.Film
	card      *view.CardView
	popup     *view.PopupView
	mode      Mode
	removeEsc func()
}

func NewFilmPresenter(cfg FilmPresenterConfig) *FilmPresenter {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return &FilmPresenter{cfg: cfg, container: cfg.Container}
}

func (p *FilmPresenter) Mode() Mode               { return p.mode }
func (p *FilmPresenter) Film() model.Film         { return p.film }
func (p *FilmPresenter) Card() *view.CardView     { return p.card }
func (p *FilmPresenter) Popup() *view.PopupView   { return p.popup }
func (p *FilmPresenter) HasCard() bool            { return p.card != nil }
func (p *FilmPresenter) Container() *dom.Node     { return p.container }
func (p *FilmPresenter) setContainer(c *dom.Node) { p.container = c }

// PopupScroll returns the open popup's scroll offset.
func (p *FilmPresenter) PopupScroll() int {
	if p.popup == nil {
		return 0
	}
	return p.popup.State().ScrollTop
}

// Init shows film. The card is mounted, or swapped in place of the previous
// card. An open popup is rebuilt for film and scrolled to scroll.
func (p *FilmPresenter) Init(film model.Film, scroll int) {
	p.film = film
	prevCard := p.card
	prevPopup := p.popup

	if p.container != nil {
		p.card = view.NewCardView(p.cfg.Host, film, p.cfg.Filter(), view.CardHandlers{
			OnOpen:    p.handleOpenClick,
			OnControl: p.handleCardControl,
		})
		if prevCard == nil || !prevCard.Rendered() || prevCard.Element().Parent == nil {
			mustRender(p.card, p.container, render.BeforeEnd)
		} else {
			mustReplace(p.card, prevCard)
		}
	} else {
		p.card = nil
	}

	if p.mode == ModeOpen && prevPopup != nil {
		state := prevPopup.State().Idle()
		if gainedComment(prevPopup.Film(), film) {
			state.Comment = ""
			state.Emotion = ""
		}
		state.ScrollTop = scroll
		p.popup = p.newPopup(film, state)
		mustReplace(p.popup, prevPopup)
		p.cfg.Host.Doc.SetScrollTop(p.popup.Element(), scroll)
		render.Remove(prevPopup)
	}

	if prevCard != p.card {
		render.Remove(prevCard)
	}
}

// Destroy removes the card and closes the popup.
func (p *FilmPresenter) Destroy() {
	render.Remove(p.card)
	p.card = nil
	p.ResetView()
}

// DetachCard removes the card but keeps an open popup alive, for list
// rebuilds that should not close it.
func (p *FilmPresenter) DetachCard() {
	render.Remove(p.card)
	p.card = nil
	p.container = nil
}

// Attach sets the container the next Init renders the card into.
func (p *FilmPresenter) Attach(container *dom.Node) {
	p.container = container
}

// ResetView closes the popup if it is open.
func (p *FilmPresenter) ResetView() {
	if p.mode != ModeDefault {
		p.closePopup()
	}
}

// SetSaving marks the popup busy while a film update or new comment is in
// flight.
func (p *FilmPresenter) SetSaving() {
	if p.mode != ModeOpen {
		return
	}
	p.popup.UpdateElement(func(s *view.PopupState) {
		s.IsDisabled = true
		s.IsSaving = true
	})
}

// SetDeleting marks the popup busy while comment id is being deleted.
func (p *FilmPresenter) SetDeleting(id string) {
	if p.mode != ModeOpen {
		return
	}
	p.popup.UpdateElement(func(s *view.PopupState) {
		s.IsDisabled = true
		s.IsDeleting = true
		s.DeletingID = id
	})
}

// SetAborting shows that action failed. Without a popup the card shakes.
// With a popup the part that issued action shakes and the busy flags are
// cleared once the animation ends. An unknown action panics.
func (p *FilmPresenter) SetAborting(action UserAction, id string) {
	if !action.valid() {
		unknownAction(action)
	}
	if p.mode == ModeDefault {
		if p.card != nil {
			p.card.ShakeCard()
		}
		return
	}

	popup := p.popup
	resetFormState := func() {
		if p.popup != popup {
			return
		}
		popup.UpdateElement(func(s *view.PopupState) { *s = s.Idle() })
	}

	switch action {
	case ActionUpdateFilm:
		popup.ShakeControls(resetFormState)
	case ActionAddComment:
		popup.ShakeForm(resetFormState)
	case ActionDeleteComment:
		popup.ShakeComment(id, resetFormState)
	}
}

func (p *FilmPresenter) newPopup(film model.Film, state view.PopupState) *view.PopupView {
	return view.NewPopupView(p.cfg.Host, film, p.cfg.Comments.Comments(), p.cfg.Filter(), state, view.PopupHandlers{
		OnClose:   p.closePopup,
		OnControl: p.handlePopupControl,
		OnDelete: func(r model.CommentRemoval) {
			p.cfg.OnDataChange(ActionDeleteComment, observable.Patch, r)
		},
		OnAdd: func(post model.CommentPost) {
			p.cfg.OnDataChange(ActionAddComment, observable.Patch, post)
		},
	})
}

// OpenPopup loads the film's comments and attaches a fresh popup. If the
// comments cannot be loaded the card shakes and nothing opens.
func (p *FilmPresenter) OpenPopup() {
	if err := p.cfg.Comments.Init(p.cfg.Context, p.film.ID); err != nil {
		p.report(wrapErr("open "+p.film.Info.Title, err))
		if p.card != nil {
			p.card.ShakeCard()
		}
		return
	}

	p.cfg.OnModeChange(p)

	body := p.cfg.Host.Doc.Body()
	p.popup = p.newPopup(p.film, view.PopupState{})
	mustRender(p.popup, body, render.BeforeEnd)
	dom.AddClass(body, HideOverflowClass)
	p.removeEsc = p.cfg.Host.Doc.AddDocumentListener(dom.EventKeyDown, p.escKeyDownHandler)
	p.mode = ModeOpen
	debuglog.Debugf("film %s: popup open", p.film.ID)
}

func (p *FilmPresenter) closePopup() {
	render.Remove(p.popup)
	p.popup = nil
	dom.RemoveClass(p.cfg.Host.Doc.Body(), HideOverflowClass)
	if p.removeEsc != nil {
		p.removeEsc()
		p.removeEsc = nil
	}
	p.mode = ModeDefault
	debuglog.Debugf("film %s: popup closed", p.film.ID)
}

func (p *FilmPresenter) escKeyDownHandler(e *dom.Event) {
	if e.IsEscape() {
		e.PreventDefault()
		p.closePopup()
	}
}

func (p *FilmPresenter) handleOpenClick() {
	p.OpenPopup()
}

func (p *FilmPresenter) handleCardControl(details model.UserDetails, kind observable.UpdateKind) {
	p.cfg.OnDataChange(ActionUpdateFilm, kind, model.FilmUpdate{Film: p.film.WithUserDetails(details)})
}

func (p *FilmPresenter) handlePopupControl(details model.UserDetails, kind observable.UpdateKind, scroll int) {
	p.cfg.OnDataChange(ActionUpdateFilm, kind, model.FilmUpdate{Film: p.film.WithUserDetails(details), Scroll: scroll})
}

func (p *FilmPresenter) report(err error) {
	debuglog.Warnf("%v", err)
	if p.cfg.OnError != nil {
		p.cfg.OnError(err)
	}
}

// gainedComment reports whether next lists a comment prev did not.
func gainedComment(prev, next model.Film) bool {
	for _, id := range next.Comments {
		if !prev.HasComment(id) {
			return true
		}
	}
	return false
}
