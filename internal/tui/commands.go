package tui

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/cinemaddict/internal/app"
)

// renderDetails turns the popup markup into terminal output. The renderer
// is picked here, on the Update goroutine, and only used by the command.
func (a *App) renderDetails(html string) tea.Cmd {
	r, err := a.getRenderer()
	if err != nil {
		return func() tea.Msg {
			return detailsRenderedMsg{html: html, content: html, err: wrapErr("init renderer", err)}
		}
	}

	return func() tea.Msg {
		md, err := htmltomarkdown.ConvertString(html)
		if err != nil {
			return detailsRenderedMsg{html: html, content: html, err: wrapErr("convert details", err)}
		}
		rendered, err := r.Render(md)
		if err != nil {
			return detailsRenderedMsg{html: html, content: md, err: wrapErr("render details", err)}
		}
		return detailsRenderedMsg{html: html, content: rendered}
	}
}

// Sender is the part of tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// SnapshotPublisher returns a loop idle hook that sends p the current
// snapshot of core.
func SnapshotPublisher(p Sender, core *app.App) func() {
	return func() {
		p.Send(SnapshotMsg{Snapshot: core.Snapshot()})
	}
}
