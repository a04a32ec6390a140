package view

import (
	"fmt"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/render"
)

func static(host *render.Host, markup string) *render.View {
	return render.NewView(host, func() string { return markup }, nil)
}

// FilmSectionView is the board's outer section.
type FilmSectionView struct{ *render.View }

func NewFilmSectionView(host *render.Host) *FilmSectionView {
	return &FilmSectionView{static(host, `<section class="films"></section>`)}
}

// FilmListView wraps one list of cards and its show-more button.
type FilmListView struct{ *render.View }

func NewFilmListView(host *render.Host) *FilmListView {
	return &FilmListView{static(host, `<section class="films-list">
  <h2 class="films-list__title visually-hidden">All movies. Upcoming</h2>
</section>`)}
}

// FilmListContainerView holds the cards.
type FilmListContainerView struct{ *render.View }

func NewFilmListContainerView(host *render.Host) *FilmListContainerView {
	return &FilmListContainerView{static(host, `<div class="films-list__container"></div>`)}
}

// ShowMoreButtonView reveals the next page of cards.
type ShowMoreButtonView struct{ *render.View }

func NewShowMoreButtonView(host *render.Host, onClick func()) *ShowMoreButtonView {
	v := &ShowMoreButtonView{}
	v.View = render.NewView(host,
		func() string { return `<button class="films-list__show-more">Show more</button>` },
		func() {
			v.On(v.Element(), dom.EventClick, func(e *dom.Event) {
				e.PreventDefault()
				onClick()
			})
		})
	return v
}

var emptyMessages = map[model.FilterType]string{
	model.FilterAll:       "There are no movies in our database",
	model.FilterWatchlist: "There are no movies to watch now",
	model.FilterHistory:   "There are no watched movies now",
	model.FilterFavorites: "There are no favorite movies now",
}

// NoFilmsView replaces the list when the active filter matches nothing.
type NoFilmsView struct{ *render.View }

func NewNoFilmsView(host *render.Host, filter model.FilterType, searching bool) *NoFilmsView {
	msg := emptyMessages[filter]
	if searching || msg == "" {
		msg = "There are no movies matching your search"
	}
	return &NoFilmsView{static(host, fmt.Sprintf(`<h2 class="films-list__title">%s</h2>`, esc(msg)))}
}

// LoadingView is shown until the catalog arrives.
type LoadingView struct{ *render.View }

func NewLoadingView(host *render.Host) *LoadingView {
	return &LoadingView{static(host, `<h2 class="films-list__title">Loading...</h2>`)}
}

// LoadErrorView is shown when the catalog could not be loaded.
type LoadErrorView struct{ *render.View }

func NewLoadErrorView(host *render.Host, reason string) *LoadErrorView {
	return &LoadErrorView{static(host, fmt.Sprintf(
		`<h2 class="films-list__title films-list__title--error">Failed to load movies: %s</h2>`, esc(reason)))}
}

// ProfileView shows the user's rank. An empty rank renders nothing visible.
type ProfileView struct{ *render.View }

func NewProfileView(host *render.Host, rank string) *ProfileView {
	return &ProfileView{static(host, fmt.Sprintf(
		`<section class="header__profile profile"><p class="profile__rating">%s</p></section>`, esc(rank)))}
}

// FooterStatisticsView shows how many films the catalog holds.
type FooterStatisticsView struct{ *render.View }

func NewFooterStatisticsView(host *render.Host, count int) *FooterStatisticsView {
	return &FooterStatisticsView{static(host, fmt.Sprintf(`<p>%d movies inside</p>`, count))}
}
