package app

import (
	"fmt"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/view"
)

// The methods below drive the app the way a user would: each one finds the
// control in the document and dispatches an event on it. They report false
// when the control is missing or disabled.

func (a *App) card(id string) *dom.Node {
	return dom.Query(a.main, fmt.Sprintf(`.film-card[data-film-id=%q]`, id))
}

func (a *App) popup() *dom.Node {
	return dom.Query(a.Doc.Body(), ".film-details")
}

// OpenFilm opens the details popup of a listed film.
func (a *App) OpenFilm(id string) bool {
	card := a.card(id)
	if card == nil {
		return false
	}
	return a.Doc.Click(dom.Query(card, ".film-card__link"))
}

// ToggleControl flips a user-details flag. It acts on the open popup when
// it shows film id, otherwise on the film's card.
func (a *App) ToggleControl(id string, control model.FilterType) bool {
	sel := fmt.Sprintf(`[data-control=%q]`, control)
	if p := a.popup(); p != nil && a.openID() == id {
		return a.Doc.Click(dom.Query(p, sel))
	}
	card := a.card(id)
	if card == nil {
		return false
	}
	return a.Doc.Click(dom.Query(card, sel))
}

// ShowMore reveals the next page of the list.
func (a *App) ShowMore() bool {
	return a.Doc.Click(dom.Query(a.main, ".films-list__show-more"))
}

// SelectFilter switches the navigation filter.
func (a *App) SelectFilter(t model.FilterType) bool {
	return a.Doc.Click(dom.Query(a.main, fmt.Sprintf(`[data-filter-type=%q]`, t)))
}

// SelectSort switches the list order.
func (a *App) SelectSort(t model.SortType) bool {
	return a.Doc.Click(dom.Query(a.main, fmt.Sprintf(`[data-sort-type=%q]`, t)))
}

// Search narrows the list to films matching query. The rendered count and
// sort order are kept; an empty query lifts the restriction.
func (a *App) Search(query string) {
	if query == a.Filter.Query() {
		return
	}
	a.Filter.SetQuery(observable.Minor, query)
}

// TypeComment replaces the draft comment text.
func (a *App) TypeComment(text string) bool {
	p := a.popup()
	if p == nil {
		return false
	}
	return a.Doc.Input(dom.Query(p, ".film-details__comment-input"), text)
}

// PickEmotion selects the draft comment's emotion.
func (a *App) PickEmotion(e model.Emotion) bool {
	p := a.popup()
	if p == nil {
		return false
	}
	return a.Doc.Check(p, dom.Query(p, "#emoji-"+string(e)))
}

// SubmitComment sends the draft with Ctrl+Enter.
func (a *App) SubmitComment() bool {
	if a.popup() == nil {
		return false
	}
	return a.Doc.KeyDown(dom.KeyEnter, true)
}

// DeleteComment removes a comment shown in the popup.
func (a *App) DeleteComment(id string) bool {
	p := a.popup()
	if p == nil {
		return false
	}
	return a.Doc.Click(dom.Query(p, fmt.Sprintf(`.film-details__comment-delete[data-id=%q]`, id)))
}

// ClosePopup closes the popup with Escape.
func (a *App) ClosePopup() bool {
	if a.popup() == nil {
		return false
	}
	return a.Doc.KeyDown(dom.KeyEscape, false)
}

// ScrollPopup sets the popup's scroll offset.
func (a *App) ScrollPopup(top int) bool {
	return a.Doc.Scroll(a.popup(), top)
}

func (a *App) openID() string {
	if fp := a.Board.Open(); fp != nil {
		return fp.Film().ID
	}
	return ""
}

// PopupSnapshot describes the open popup.
type PopupSnapshot struct {
	Film     model.Film
	Comments []model.Comment
	State    view.PopupState
	// HTML is the popup's markup.
	HTML string
}

// Snapshot is a read-only picture of the document for front ends that
// cannot show it directly.
type Snapshot struct {
	Filter  model.FilterType
	Sort    model.SortType
	Query   string
	Filters []view.FilterItem
	// Cards lists the rendered films in document order.
	Cards   []model.Film
	HasMore bool
	// Message is the board's headline when it shows one instead of cards:
	// loading, load failure or an empty list.
	Message string
	Rank    string
	Total   int
	Popup   *PopupSnapshot
	HTML    string
}

// Snapshot captures the current document.
func (a *App) Snapshot() Snapshot {
	films := a.Films.Films()
	s := Snapshot{
		Filter:  a.Filter.Filter(),
		Sort:    a.Board.SortType(),
		Query:   a.Filter.Query(),
		Filters: a.Nav.Items(),
		HasMore: dom.Query(a.main, ".films-list__show-more") != nil,
		Rank:    model.UserRank(films),
		Total:   len(films),
		HTML:    a.Doc.HTML(),
	}

	for _, n := range dom.QueryAll(a.main, ".film-card") {
		id, _ := dom.Attr(n, "data-film-id")
		if f, ok := a.Films.Film(id); ok {
			s.Cards = append(s.Cards, f)
		}
	}
	if title := dom.Query(a.main, ".films-list__title:not(.visually-hidden)"); title != nil {
		s.Message = dom.Text(title)
	}

	if fp := a.Board.Open(); fp != nil && fp.Popup() != nil {
		pv := fp.Popup()
		var comments []model.Comment
		for _, c := range pv.Comments() {
			if pv.Film().HasComment(c.ID) {
				comments = append(comments, c)
			}
		}
		s.Popup = &PopupSnapshot{
			Film:     pv.Film(),
			Comments: comments,
			State:    pv.State(),
			HTML:     dom.OuterHTML(pv.Element()),
		}
	}
	return s
}
