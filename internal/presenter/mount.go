package presenter

import (
	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/render"
)

// Render and Replace only fail on detached targets, which means a
// presenter's bookkeeping is broken.

func mustRender(c render.Component, container *dom.Node, pos render.Position) {
	if err := render.Render(c, container, pos); err != nil {
		panic(err)
	}
}

func mustReplace(next, prev render.Component) {
	if err := render.Replace(next, prev); err != nil {
		panic(err)
	}
}
