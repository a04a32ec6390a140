package view

import (
	"fmt"
	"strings"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
)

// CardHandlers are the card's callbacks.
type CardHandlers struct {
	OnOpen    func()
	OnControl func(details model.UserDetails, kind observable.UpdateKind)
}

// CardView is a film's entry in a list.
type CardView struct {
	*render.View
	film     model.Film
	filter   model.FilterType
	handlers CardHandlers
}

func NewCardView(host *render.Host, film model.Film, filter model.FilterType, h CardHandlers) *CardView {
	v := &CardView{film: film, filter: filter, handlers: h}
	v.View = render.NewView(host, v.template, v.bind)
	return v
}

// Film returns the film the card shows.
func (v *CardView) Film() model.Film {
	return v.film
}

func (v *CardView) template() string {
	f := v.film
	d := f.UserDetails
	genre := ""
	if len(f.Info.Genres) > 0 {
		genre = f.Info.Genres[0]
	}
	return fmt.Sprintf(`<article class="film-card" data-film-id="%s">
  <a class="film-card__link">
    <h3 class="film-card__title">%s</h3>
    <p class="film-card__rating">%s</p>
    <p class="film-card__info">
      <span class="film-card__year">%s</span>
      <span class="film-card__duration">%s</span>
      <span class="film-card__genre">%s</span>
    </p>
    <img src="%s" alt="" class="film-card__poster">
    <p class="film-card__description">%s</p>
    <span class="film-card__comments">%s</span>
  </a>
  <div class="film-card__controls">
    <button class="film-card__controls-item film-card__controls-item--add-to-watchlist%s" type="button" data-control="%s">%s Watchlist</button>
    <button class="film-card__controls-item film-card__controls-item--mark-as-watched%s" type="button" data-control="%s">%s Watched</button>
    <button class="film-card__controls-item film-card__controls-item--favorite%s" type="button" data-control="%s">%s Favorite</button>
  </div>
</article>`,
		esc(f.ID),
		esc(f.Info.Title),
		formatRating(f.Info.TotalRating),
		releaseYear(f.Info.Release.Date),
		formatDuration(f.Info.Duration),
		esc(genre),
		esc(f.Info.Poster),
		esc(truncateEnd(strings.TrimSpace(f.Info.Description), descriptionLimit)),
		pluralComments(len(f.Comments)),
		classIf(d.Watchlist, cardActiveClass), model.FilterWatchlist, checkbox(d.Watchlist),
		classIf(d.AlreadyWatched, cardActiveClass), model.FilterHistory, checkbox(d.AlreadyWatched),
		classIf(d.Favorite, cardActiveClass), model.FilterFavorites, checkbox(d.Favorite),
	)
}

const cardActiveClass = "film-card__controls-item--active"

func (v *CardView) bind() {
	v.On(v.Query(".film-card__link"), dom.EventClick, func(e *dom.Event) {
		e.PreventDefault()
		if v.handlers.OnOpen != nil {
			v.handlers.OnOpen()
		}
	})
	v.On(v.Query(".film-card__controls"), dom.EventClick, func(e *dom.Event) {
		control, ok := controlOf(e)
		if !ok || v.handlers.OnControl == nil {
			return
		}
		e.PreventDefault()
		v.handlers.OnControl(ToggleControl(v.film, control, v.filter))
	})
}

// ShakeCard plays the failure animation on the whole card.
func (v *CardView) ShakeCard() {
	v.Shake("", nil)
}
