package presenter

import (
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/observable"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/view"
)

// FilterPresenterConfig wires the navigation to its models.
type FilterPresenterConfig struct {
	Host       *render.Host
	Container  *dom.Node
	Films      *model.FilmsModel
	Filter     *model.FilterModel
	Predicates model.Predicates
}

// FilterPresenter renders the filter navigation with per-filter counts.
type FilterPresenter struct {
	cfg  FilterPresenterConfig
	view *view.FilterView
}

func NewFilterPresenter(cfg FilterPresenterConfig) *FilterPresenter {
	if cfg.Predicates == nil {
		cfg.Predicates = model.FilterPredicates
	}
	p := &FilterPresenter{cfg: cfg}
	cfg.Films.Subscribe(p.handleModelEvent)
	cfg.Filter.Subscribe(p.handleModelEvent)
	return p
}

// Items returns every filter with the number of films it matches.
func (p *FilterPresenter) Items() []view.FilterItem {
	films := p.cfg.Films.Films()
	items := make([]view.FilterItem, 0, len(model.FilterTypes))
	for _, t := range model.FilterTypes {
		items = append(items, view.FilterItem{Type: t, Count: p.cfg.Predicates.Count(films, t)})
	}
	return items
}

// Init renders the navigation, replacing the previous one in place.
func (p *FilterPresenter) Init() {
	prev := p.view
	p.view = view.NewFilterView(p.cfg.Host, p.Items(), p.cfg.Filter.Filter(), p.handleFilterTypeChange)

	if prev == nil {
		mustRender(p.view, p.cfg.Container, render.AfterBegin)
		return
	}
	mustReplace(p.view, prev)
	render.Remove(prev)
}

func (p *FilterPresenter) handleModelEvent(observable.UpdateKind, any) {
	p.Init()
}

func (p *FilterPresenter) handleFilterTypeChange(t model.FilterType) {
	if t == p.cfg.Filter.Filter() {
		return
	}
	p.cfg.Filter.SetFilter(observable.Major, t)
}
