// Package app assembles the catalog: it builds the host document, the
// models and the presenters, and exposes the interactions a front end can
// perform on the live document.
package app

import (
	"context"
	"time"

	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/presenter"
	"github.com/pders01/cinemaddict/internal/render"
	"github.com/pders01/cinemaddict/internal/runtime"
	"github.com/pders01/cinemaddict/internal/search"
)

// Options configures New.
type Options struct {
	Service model.Service
	Sched   runtime.Scheduler
	// Search indexes the catalog for queries. Nil picks search.New.
	Search       search.Engine
	PageSize     int
	ShakeTimeout time.Duration
	Context      context.Context
	OnError      func(error)
}

// App owns the document and everything rendered into it. All methods must
// run on the scheduler's goroutine.
type App struct {
	Doc      *dom.Document
	Host     *render.Host
	Films    *model.FilmsModel
	Comments *model.CommentsModel
	Filter   *model.FilterModel
	Search   search.Engine

	Board  *presenter.FilmsPresenter
	Nav    *presenter.FilterPresenter
	Chrome *presenter.ChromePresenter

	ctx    context.Context
	header *dom.Node
	main   *dom.Node
	footer *dom.Node
}

const (
	headerMarkup = `<header class="header"><h1 class="header__logo logo">Cinemaddict</h1></header>`
	mainMarkup   = `<main class="main"></main>`
	footerMarkup = `<footer class="footer"><section class="footer__logo logo logo--smaller">Cinemaddict</section><section class="footer__statistics"></section></footer>`
)

// New builds the page skeleton and wires the presenters. Nothing is loaded
// until Start.
func New(opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Search == nil {
		opts.Search = search.New()
	}

	a := &App{
		Doc:      dom.NewDocument(),
		Films:    model.NewFilmsModel(opts.Service),
		Comments: model.NewCommentsModel(opts.Service),
		Filter:   model.NewFilterModel(),
		Search:   opts.Search,
		ctx:      opts.Context,
	}
	a.Host = render.NewHost(a.Doc, opts.Sched)
	if opts.ShakeTimeout > 0 {
		a.Host.ShakeTimeout = opts.ShakeTimeout
	}

	body := a.Doc.Body()
	a.header = dom.MustParse(headerMarkup)
	a.main = dom.MustParse(mainMarkup)
	a.footer = dom.MustParse(footerMarkup)
	body.AppendChild(a.header)
	body.AppendChild(a.main)
	body.AppendChild(a.footer)

	// The index must see a change before the board asks it to match.
	search.Follow(a.Films, a.Search)

	onError := func(err error) {
		if opts.OnError != nil {
			opts.OnError(err)
		}
	}

	a.Chrome = presenter.NewChromePresenter(a.Host, a.header, dom.Query(a.footer, ".footer__statistics"), a.Films)
	a.Nav = presenter.NewFilterPresenter(presenter.FilterPresenterConfig{
		Host:       a.Host,
		Container:  a.main,
		Films:      a.Films,
		Filter:     a.Filter,
		Predicates: model.FilterPredicates,
	})
	a.Board = presenter.NewFilmsPresenter(presenter.FilmsPresenterConfig{
		Host:       a.Host,
		Container:  a.main,
		Films:      a.Films,
		Comments:   a.Comments,
		Filter:     a.Filter,
		Predicates: model.FilterPredicates,
		Search:     a.Search,
		PageSize:   opts.PageSize,
		Context:    opts.Context,
		OnError:    onError,
	})

	a.Chrome.Init()
	a.Nav.Init()
	a.Board.Init()
	return a
}

// Start loads the catalog. A failure is also shown on the board.
func (a *App) Start() error {
	if err := a.Films.Init(a.ctx); err != nil {
		return err
	}
	debuglog.Infof("app: catalog ready")
	return nil
}
