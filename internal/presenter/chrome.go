package presenter

import (
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/view"
)

// ChromePresenter keeps the header rank and footer statistics current.
type ChromePresenter struct {
	host    *render.Host
	header  *dom.Node
	footer  *dom.Node
	films   *model.FilmsModel
	profile *view.ProfileView
	stats   *view.FooterStatisticsView
}

func NewChromePresenter(host *render.Host, header, footer *dom.Node, films *model.FilmsModel) *ChromePresenter {
	p := &ChromePresenter{host: host, header: header, footer: footer, films: films}
	films.Subscribe(func(observable.UpdateKind, any) { p.Init() })
	return p
}

// Init renders both views from the current catalog.
func (p *ChromePresenter) Init() {
	films := p.films.Films()
	first := p.profile == nil

	prevProfile, prevStats := p.profile, p.stats
	p.profile = view.NewProfileView(p.host, model.UserRank(films))
	p.stats = view.NewFooterStatisticsView(p.host, len(films))

	if first {
		mustRender(p.profile, p.header, render.BeforeEnd)
		mustRender(p.stats, p.footer, render.BeforeEnd)
		return
	}
	mustReplace(p.profile, prevProfile)
	mustReplace(p.stats, prevStats)
	render.Remove(prevProfile)
	render.Remove(prevStats)
}
