package view

import (
	"fmt"
	"strings"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
)

// Selectors the popup shakes on failure.
const (
	ControlsSelector   = ".film-details__controls"
	NewCommentSelector = ".film-details__new-comment"
)

// CommentSelector matches the row of one comment.
func CommentSelector(id string) string {
	return fmt.Sprintf(`.film-details__comment[data-comment-id=%q]`, id)
}

// PopupState is the popup's transient state.
type PopupState struct {
	Emotion    model.Emotion
	Comment    string
	ScrollTop  int
	IsDisabled bool
	IsSaving   bool
	IsDeleting bool
	DeletingID string
}

func (s PopupState) ScrollOffset() int { return s.ScrollTop }

// Idle returns s with every busy flag cleared.
func (s PopupState) Idle() PopupState {
	s.IsDisabled = false
	s.IsSaving = false
	s.IsDeleting = false
	s.DeletingID = ""
	return s
}

// PopupHandlers are the popup's callbacks. Scroll arguments carry the
// popup's scroll offset at the time of the interaction.
type PopupHandlers struct {
	OnClose   func()
	OnControl func(details model.UserDetails, kind observable.UpdateKind, scroll int)
	OnDelete  func(removal model.CommentRemoval)
	OnAdd     func(post model.CommentPost)
}

// PopupView shows a film's details and comments.
type PopupView struct {
	*render.Stateful[PopupState]
	film     model.Film
	comments []model.Comment
	filter   model.FilterType
	handlers PopupHandlers
}

// NewPopupView builds a popup for film. comments may hold other films'
// comments; only those listed on film are shown.
func NewPopupView(host *render.Host, film model.Film, comments []model.Comment, filter model.FilterType, initial PopupState, h PopupHandlers) *PopupView {
	v := &PopupView{film: film, filter: filter, handlers: h}
	ids := make(map[string]bool, len(film.Comments))
	for _, id := range film.Comments {
		ids[id] = true
	}
	for _, c := range comments {
		if ids[c.ID] {
			v.comments = append(v.comments, c)
		}
	}
	v.Stateful = render.NewStateful[PopupState](host, initial, v)
	return v
}

func (v *PopupView) Film() model.Film          { return v.film }
func (v *PopupView) Comments() []model.Comment { return append([]model.Comment(nil), v.comments...) }

func (v *PopupView) Template(s PopupState) string {
	f := v.film
	info := f.Info
	d := f.UserDetails

	genreTerm := "Genres"
	if len(info.Genres) == 1 {
		genreTerm = "Genre"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<section class="film-details">
  <div class="film-details__inner">
    <div class="film-details__top-container">
      <div class="film-details__close">
        <button class="film-details__close-btn" type="button">close</button>
      </div>
      <div class="film-details__info-wrap">
        <div class="film-details__poster">
          <img class="film-details__poster-img" src="%s" alt="">
          <p class="film-details__age">%d+</p>
        </div>
        <div class="film-details__info">
          <div class="film-details__info-head">
            <div class="film-details__title-wrap">
              <h3 class="film-details__title">%s</h3>
              <p class="film-details__title-original">Original: %s</p>
            </div>
            <div class="film-details__rating">
              <p class="film-details__total-rating">%s</p>
            </div>
          </div>
          <table class="film-details__table">
            <tr class="film-details__row"><td class="film-details__term">Director</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">Writers</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">Actors</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">Release Date</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">Duration</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">Country</td><td class="film-details__cell">%s</td></tr>
            <tr class="film-details__row"><td class="film-details__term">%s</td><td class="film-details__cell"><span class="film-details__genre">%s</span></td></tr>
          </table>
          <p class="film-details__film-description">%s</p>
        </div>
      </div>
      <section class="film-details__controls">`,
		esc(info.Poster), info.AgeRating,
		esc(info.Title), esc(info.AlternativeTitle),
		formatRating(info.TotalRating),
		esc(info.Director),
		esc(strings.Join(info.Writers, ", ")),
		esc(strings.Join(info.Actors, ", ")),
		esc(releaseDate(info.Release.Date)),
		formatDuration(info.Duration),
		esc(info.Release.Country),
		genreTerm, esc(strings.Join(info.Genres, ", ")),
		esc(info.Description),
	)

	controls := []struct {
		id     string
		filter model.FilterType
		on     bool
		label  string
	}{
		{"watchlist", model.FilterWatchlist, d.Watchlist, "Add to watchlist"},
		{"watched", model.FilterHistory, d.AlreadyWatched, "Already watched"},
		{"favorite", model.FilterFavorites, d.Favorite, "Add to favorites"},
	}
	for _, c := range controls {
		fmt.Fprintf(&b, `
        <button type="button" class="film-details__control-button film-details__control-button--%s%s" id="%s" name="%s" data-control="%s"%s>%s %s</button>`,
			c.id, classIf(c.on, "film-details__control-button--active"), c.id, c.id, c.filter,
			attrIf(s.IsDisabled, "disabled"), checkbox(c.on), c.label)
	}

	fmt.Fprintf(&b, `
      </section>
    </div>
    <div class="film-details__bottom-container">
      <section class="film-details__comments-wrap">
        <h3 class="film-details__comments-title">Comments <span class="film-details__comments-count">%d</span></h3>
        <ul class="film-details__comments-list">`, len(v.comments))

	for _, c := range v.comments {
		label := "Delete"
		if s.IsDeleting && s.DeletingID == c.ID {
			label = "Deleting..."
		}
		fmt.Fprintf(&b, `
          <li class="film-details__comment" data-comment-id="%s">
            <span class="film-details__comment-emoji"><img src="./images/emoji/%s.png" width="55" height="55" alt="emoji-%s"></span>
            <div>
              <p class="film-details__comment-text">%s</p>
              <p class="film-details__comment-info">
                <span class="film-details__comment-author">%s</span>
                <span class="film-details__comment-day">%s</span>
                <button class="film-details__comment-delete" data-id="%s"%s>%s</button>
              </p>
            </div>
          </li>`,
			esc(c.ID), esc(string(c.Emotion)), esc(string(c.Emotion)),
			esc(c.Text), esc(c.Author), esc(commentDate(c.Date)),
			esc(c.ID), attrIf(s.IsDisabled, "disabled"), label)
	}

	emoji := ""
	if s.Emotion != "" {
		emoji = fmt.Sprintf(`<img src="./images/emoji/%s.png" width="55" height="55" alt="emoji-%s">`, esc(string(s.Emotion)), esc(string(s.Emotion)))
	}
	placeholder := "Select reaction below and write comment here"
	if s.IsSaving {
		placeholder = "Saving..."
	}
	fmt.Fprintf(&b, `
        </ul>
        <form class="film-details__new-comment" action="" method="get">
          <div class="film-details__add-emoji-label">%s</div>
          <label class="film-details__comment-label">
            <textarea class="film-details__comment-input" placeholder="%s" name="comment"%s>%s</textarea>
          </label>
          <div class="film-details__emoji-list">`,
		emoji, placeholder, attrIf(s.IsDisabled, "disabled"), esc(s.Comment))

	for _, e := range model.Emotions {
		fmt.Fprintf(&b, `
            <input class="film-details__emoji-item visually-hidden" name="comment-emoji" type="radio" id="emoji-%s" value="%s"%s%s>
            <label class="film-details__emoji-label" for="emoji-%s"><img src="./images/emoji/%s.png" width="30" height="30" alt="emoji-%s"></label>`,
			e, e, attrIf(s.Emotion == e, "checked"), attrIf(s.IsDisabled, "disabled"), e, e, e)
	}

	b.WriteString(`
          </div>
        </form>
      </section>
    </div>
  </div>
</section>`)
	return b.String()
}

func (v *PopupView) RestoreHandlers() {
	v.On(v.Element(), dom.EventScroll, func(e *dom.Event) {
		v.SetState(func(s *PopupState) { s.ScrollTop = e.ScrollTop })
	})

	v.On(v.Query(".film-details__close-btn"), dom.EventClick, func(e *dom.Event) {
		e.PreventDefault()
		if v.handlers.OnClose != nil {
			v.handlers.OnClose()
		}
	})

	v.On(v.Query(ControlsSelector), dom.EventClick, func(e *dom.Event) {
		control, ok := controlOf(e)
		if !ok || v.handlers.OnControl == nil {
			return
		}
		e.PreventDefault()
		details, kind := ToggleControl(v.film, control, v.filter)
		v.handlers.OnControl(details, kind, v.State().ScrollTop)
	})

	v.On(v.Query(".film-details__emoji-list"), dom.EventChange, func(e *dom.Event) {
		e.PreventDefault()
		emotion := model.Emotion(e.Value)
		if !emotion.Valid() {
			return
		}
		v.UpdateElement(func(s *PopupState) { s.Emotion = emotion })
	})

	v.On(v.Query(".film-details__comment-input"), dom.EventInput, func(e *dom.Event) {
		e.PreventDefault()
		v.SetState(func(s *PopupState) { s.Comment = e.Value })
	})

	for _, btn := range v.QueryAll(".film-details__comment-delete") {
		id, _ := dom.Attr(btn, "data-id")
		v.On(btn, dom.EventClick, func(e *dom.Event) {
			e.PreventDefault()
			if v.handlers.OnDelete != nil {
				v.handlers.OnDelete(model.CommentRemoval{Film: v.film, CommentID: id, Scroll: v.State().ScrollTop})
			}
		})
	}

	v.OnDocument(dom.EventKeyDown, func(e *dom.Event) {
		if !e.IsCtrlEnter() {
			return
		}
		s := v.State()
		if s.IsDisabled || v.handlers.OnAdd == nil {
			return
		}
		e.PreventDefault()
		v.handlers.OnAdd(model.CommentPost{
			Film:   v.film,
			Draft:  model.CommentDraft{Text: s.Comment, Emotion: s.Emotion},
			Scroll: s.ScrollTop,
		})
	})
}

// ShakeControls plays the failure animation on the control buttons.
func (v *PopupView) ShakeControls(done func()) {
	v.Shake(ControlsSelector, done)
}

// ShakeComment plays the failure animation on one comment row.
func (v *PopupView) ShakeComment(id string, done func()) {
	v.Shake(CommentSelector(id), done)
}

// ShakeForm plays the failure animation on the new-comment form.
func (v *PopupView) ShakeForm(done func()) {
	v.Shake(NewCommentSelector, done)
}
