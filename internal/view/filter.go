package view

import (
	"fmt"
	"strings"

	"github.com/pders01/cinemaddict/internal/dom"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/render"
)

// FilterItem is one entry of the navigation.
type FilterItem struct {
	Type  model.FilterType
	Count int
}

// FilterView is the main navigation.
type FilterView struct {
	*render.View
	items    []FilterItem
	current  model.FilterType
	onChange func(model.FilterType)
}

func NewFilterView(host *render.Host, items []FilterItem, current model.FilterType, onChange func(model.FilterType)) *FilterView {
	v := &FilterView{items: items, current: current, onChange: onChange}
	v.View = render.NewView(host, v.template, v.bind)
	return v
}

func (v *FilterView) template() string {
	var b strings.Builder
	b.WriteString(`<nav class="main-navigation">`)
	for _, item := range v.items {
		active := item.Type == v.current
		marker := ""
		if active {
			marker = "> "
		}
		count := ""
		if item.Type != model.FilterAll {
			count = fmt.Sprintf(` <span class="main-navigation__item-count">%d</span>`, item.Count)
		}
		fmt.Fprintf(&b, `<a href="#%s" class="main-navigation__item%s" data-filter-type="%s">%s%s%s</a> `,
			item.Type, classIf(active, "main-navigation__item--active"), item.Type, marker, esc(item.Type.Title()), count)
	}
	b.WriteString(`</nav>`)
	return b.String()
}

func (v *FilterView) bind() {
	v.On(v.Element(), dom.EventClick, func(e *dom.Event) {
		// The count span bubbles too, so look at the nearest link.
		n := e.Target
		for n != nil && n != v.Element() {
			if t, ok := dom.Attr(n, "data-filter-type"); ok {
				e.PreventDefault()
				if model.FilterType(t) != v.current {
					v.onChange(model.FilterType(t))
				}
				return
			}
			n = n.Parent
		}
	})
}

// SortView is the sort bar above the board.
type SortView struct {
	*render.View
	current  model.SortType
	onChange func(model.SortType)
}

func NewSortView(host *render.Host, current model.SortType, onChange func(model.SortType)) *SortView {
	v := &SortView{current: current, onChange: onChange}
	v.View = render.NewView(host, v.template, v.bind)
	return v
}

func (v *SortView) template() string {
	var b strings.Builder
	b.WriteString(`<ul class="sort">`)
	for _, t := range model.SortTypes {
		active := t == v.current
		marker := ""
		if active {
			marker = "> "
		}
		fmt.Fprintf(&b, `<li><a href="#" class="sort__button%s" data-sort-type="%s">%s%s</a></li>`,
			classIf(active, "sort__button--active"), t, marker, t.Title())
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func (v *SortView) bind() {
	v.On(v.Element(), dom.EventClick, func(e *dom.Event) {
		t, ok := dom.Attr(e.Target, "data-sort-type")
		if !ok {
			return
		}
		e.PreventDefault()
		if model.SortType(t) != v.current {
			v.onChange(model.SortType(t))
		}
	})
}
