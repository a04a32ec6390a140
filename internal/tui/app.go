package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/cinemaddict/internal/app"
	"github.com/pders01/cinemaddict/internal/config"
	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/runtime"
	"github.com/pders01/cinemaddict/internal/search"
)

const defaultSearchDebounce = 200 * time.Millisecond

// boardChrome is the number of lines around the card list: header, nav,
// sort bar, a spacer and the status bar.
const boardChrome = 8

// App is the Bubble Tea model. It never touches the catalog directly: key
// presses are posted to the loop that owns it, and the loop answers with
// snapshots.
type App struct {
	config     *config.Config
	sched      runtime.Scheduler
	core       *app.App
	backend    string
	keyHandler *KeyHandler

	cardList     list.Model
	viewport     viewport.Model
	searchInput  textinput.Model
	commentInput textinput.Model
	help         help.Model

	view          View
	snap          app.Snapshot
	ready         bool
	commentCursor int
	detailsHTML   string

	searchSeq          int
	pendingSearchQuery string
	searchDebounce     time.Duration

	width      int
	height     int
	err        error
	status     string
	statusKind StatusKind

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

// NewApp builds the model for core, which must only be touched through
// sched. backend names the data source for the status bar.
func NewApp(core *app.App, sched runtime.Scheduler, cfg *config.Config, backend string) *App {
	cardList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	cardList.Title = "› films"
	cardList.SetShowStatusBar(false)
	cardList.SetFilteringEnabled(false)
	cardList.SetShowHelp(false)

	si := textinput.New()
	si.Placeholder = "Search titles, people, genres..."
	si.CharLimit = 256

	ci := textinput.New()
	ci.Placeholder = "Select reaction below and write comment here"
	ci.CharLimit = 1000

	a := &App{
		config:         cfg,
		sched:          sched,
		core:           core,
		backend:        backend,
		cardList:       cardList,
		viewport:       viewport.New(0, 0),
		searchInput:    si,
		commentInput:   ci,
		help:           help.New(),
		view:           ViewBoard,
		searchDebounce: defaultSearchDebounce,
	}
	a.keyHandler = NewKeyHandler(a, cfg)
	return a
}

// post runs fn against the catalog on the loop goroutine.
func (a *App) post(fn func(*app.App)) {
	core := a.core
	a.sched.Post(func() { fn(core) })
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if limit := a.config.UI.WordWrap; limit > 0 && wordWrapWidth > limit {
		wordWrapWidth = limit
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cardList.SetSize(msg.Width, max(msg.Height-boardChrome, 3))
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-4, 3)
		a.help.Width = msg.Width

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth
		a.commentInput.Width = inputWidth

		if a.detailsHTML != "" {
			return a, a.renderDetails(a.detailsHTML)
		}
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case SnapshotMsg:
		return a, a.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		a.err = msg.Err
		debuglog.Errorf("tui: %v", msg.Err)
		return a, nil

	case detailsRenderedMsg:
		if msg.html == a.detailsHTML {
			offset := a.viewport.YOffset
			a.viewport.SetContent(msg.content)
			a.viewport.SetYOffset(offset)
		}
		if msg.err != nil {
			a.err = msg.err
		}
		return a, nil

	case searchDebounceFireMsg:
		if msg.seq == a.searchSeq && a.view == ViewSearch {
			query := a.pendingSearchQuery
			a.post(func(c *app.App) { c.Search(query) })
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case ViewBoard:
		a.cardList, cmd = a.cardList.Update(msg)
	case ViewDetails:
		a.viewport, cmd = a.viewport.Update(msg)
	case ViewComment:
		a.commentInput, cmd = a.commentInput.Update(msg)
	case ViewSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
	}
	return a, cmd
}

// applySnapshot adopts the loop's latest picture of the document.
func (a *App) applySnapshot(s app.Snapshot) tea.Cmd {
	prevPopup := a.snap.Popup
	a.snap = s
	a.ready = true

	items := make([]list.Item, len(s.Cards))
	for i, f := range s.Cards {
		items[i] = cardItem{film: f}
	}
	index := a.cardList.Index()
	cmd := a.cardList.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		a.cardList.Select(index)
	}
	a.cardList.Title = "› " + s.Filter.Title()

	if s.Popup == nil {
		if a.view == ViewDetails || a.view == ViewComment {
			a.commentInput.Blur()
			a.view = ViewBoard
		}
		a.detailsHTML = ""
		a.commentCursor = 0
		return cmd
	}

	if a.view == ViewBoard || a.view == ViewSearch {
		a.searchInput.Blur()
		a.view = ViewDetails
	}
	if prevPopup == nil || prevPopup.Film.ID != s.Popup.Film.ID {
		a.commentCursor = 0
		a.viewport.GotoTop()
	}
	a.clampCommentCursor()

	switch {
	case s.Popup.State.IsSaving:
		a.setStatus(MsgSaving, StatusInfo)
	case s.Popup.State.IsDeleting:
		a.setStatus(MsgDeleting, StatusInfo)
	case a.status == MsgSaving || a.status == MsgDeleting:
		a.setStatus("", StatusInfo)
	}

	if s.Popup.HTML == a.detailsHTML {
		return cmd
	}
	a.detailsHTML = s.Popup.HTML
	return tea.Batch(cmd, a.renderDetails(s.Popup.HTML))
}

func (a *App) selectedFilm() (model.Film, bool) {
	item, ok := a.cardList.SelectedItem().(cardItem)
	if !ok {
		return model.Film{}, false
	}
	return item.film, true
}

func (a *App) selectedComment() (model.Comment, bool) {
	if a.snap.Popup == nil || len(a.snap.Popup.Comments) == 0 {
		return model.Comment{}, false
	}
	a.clampCommentCursor()
	return a.snap.Popup.Comments[a.commentCursor], true
}

func (a *App) moveCommentCursor(step int) {
	a.commentCursor += step
	a.clampCommentCursor()
}

func (a *App) clampCommentCursor() {
	n := 0
	if a.snap.Popup != nil {
		n = len(a.snap.Popup.Comments)
	}
	if a.commentCursor >= n {
		a.commentCursor = n - 1
	}
	if a.commentCursor < 0 {
		a.commentCursor = 0
	}
}

func (a *App) searchEngineStatus() string {
	engine := a.core.Search
	name := fmt.Sprintf("%T", engine)
	if ds, ok := engine.(search.DebugStatser); ok {
		if n, err := ds.DocCount(); err == nil {
			return fmt.Sprintf("Search: %s • idx: %d", name, n)
		}
	}
	return "Search: " + name
}

func (a *App) View() string {
	if !a.ready {
		return renderCentered(a.width, a.height, GetWelcomeMessage())
	}

	var content string
	switch a.view {
	case ViewBoard, ViewSearch:
		content = a.boardView()
	case ViewDetails:
		content = a.detailsView()
	case ViewComment:
		content = a.commentView()
	}

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.getCustomStatusBar())
}

func (a *App) boardView() string {
	s := a.snap

	subtitle := fmt.Sprintf("%d movies inside", s.Total)
	if s.Rank != "" {
		subtitle = s.Rank + " • " + subtitle
	}
	rows := []string{renderHeader("› "+AppName, subtitle, a.width)}

	labels := make([]string, len(s.Filters))
	active := 0
	for i, item := range s.Filters {
		labels[i] = item.Type.Title()
		if item.Type != model.FilterAll {
			labels[i] += fmt.Sprintf(" %d", item.Count)
		}
		if item.Type == s.Filter {
			active = i
		}
	}
	rows = append(rows, renderTabs(labels, active))

	if a.view == ViewSearch {
		rows = append(rows, renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width))
	} else if s.Query != "" {
		rows = append(rows, renderMuted("search: "+s.Query))
	}

	if s.Message != "" || len(s.Cards) == 0 {
		msg := s.Message
		if msg == "" {
			msg = MsgNoResults
		}
		height := a.height - boardChrome + 2
		rows = append(rows, renderCentered(a.width, max(height, 1), renderHelp(msg)))
		return lipgloss.JoinVertical(lipgloss.Top, rows...)
	}

	sortLabels := make([]string, len(model.SortTypes))
	sortActive := 0
	for i, t := range model.SortTypes {
		sortLabels[i] = t.Title()
		if t == s.Sort {
			sortActive = i
		}
	}
	rows = append(rows, renderTabs(sortLabels, sortActive), a.cardList.View())
	if s.HasMore {
		rows = append(rows, renderHelp(fmt.Sprintf("%s: show more", a.config.Keys.Bindings.ShowMore)))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

func (a *App) detailsView() string {
	p := a.snap.Popup
	if p == nil {
		return ""
	}

	title := "› " + p.Film.Info.Title
	var subtitle string
	if c, ok := a.selectedComment(); ok {
		subtitle = fmt.Sprintf("comment %d/%d: %s", a.commentCursor+1, len(p.Comments),
			truncateMiddle(c.Author+": "+c.Text, max(a.width-20, 10)))
	}
	if p.State.Emotion != "" {
		subtitle = strings.TrimSpace(subtitle + "  " + MsgEmotion(string(p.State.Emotion)))
	}
	return lipgloss.JoinVertical(lipgloss.Top,
		renderHeader(title, subtitle, a.width),
		a.viewport.View(),
	)
}

func (a *App) commentView() string {
	p := a.snap.Popup
	title := "› new comment"
	if p != nil {
		title += " on " + p.Film.Info.Title
	}
	emotion := "pick an emotion with " + a.config.Keys.Bindings.Emotion + " first"
	if p != nil && p.State.Emotion != "" {
		emotion = MsgEmotion(string(p.State.Emotion))
	}
	return renderCentered(a.width, max(a.height-3, 1), lipgloss.JoinVertical(
		lipgloss.Center,
		renderHeader(title, emotion, a.width),
		"",
		renderInputFrame(a.commentInput.View(), a.commentInput.Focused(), a.commentInput.Width),
		"",
		renderHelp("Press Enter to send, Esc to keep as draft"),
	))
}

func (a *App) getCustomStatusBar() string {
	if a.err != nil {
		errorMsg := ErrorMessageStyle.Render(truncateEnd(errorLine(a.err), max(a.width-2, 1)))
		return StatusBarStyle.Width(a.width).Render(errorMsg)
	}

	left := a.help.View(a.keyHandler)
	if a.status != "" {
		left = a.statusKind.style().Render(a.status) + renderMuted(" • ") + left
	}
	right := renderMuted(truncateMiddle(a.backend, max(a.width/4, 8)))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return StatusBarStyle.Width(a.width).Render(left)
	}
	return StatusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

type cardItem struct {
	film model.Film
}

func (i cardItem) Title() string {
	f := i.film
	title := f.Info.Title
	if f.Info.TotalRating > 0 {
		title += "  " + RatingStyle.Render(fmt.Sprintf("%.1f", f.Info.TotalRating))
	}
	return title
}

func (i cardItem) Description() string {
	f := i.film
	var parts []string
	if f.Info.Release.Date != nil {
		parts = append(parts, f.Info.Release.Date.Format("2006"))
	}
	if f.Info.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%dh %dm", f.Info.Duration/60, f.Info.Duration%60))
	}
	if len(f.Info.Genres) > 0 {
		parts = append(parts, f.Info.Genres[0])
	}
	n := len(f.Comments)
	if n == 1 {
		parts = append(parts, "1 comment")
	} else {
		parts = append(parts, fmt.Sprintf("%d comments", n))
	}
	parts = append(parts, flags(f.UserDetails))
	return renderMuted(strings.Join(parts, " • "))
}

func (i cardItem) FilterValue() string { return i.film.Info.Title }

func flags(d model.UserDetails) string {
	mark := func(on bool, label string) string {
		if on {
			return "[x] " + label
		}
		return "[ ] " + label
	}
	return strings.Join([]string{
		mark(d.Watchlist, "watchlist"),
		mark(d.AlreadyWatched, "watched"),
		mark(d.Favorite, "favorite"),
	}, " ")
}

// SnapshotMsg carries a document snapshot from the loop.
type SnapshotMsg struct {
	Snapshot app.Snapshot
}

// ErrorMsg carries a failure reported by the catalog.
type ErrorMsg struct {
	Err error
}

type detailsRenderedMsg struct {
	html    string
	content string
	err     error
}

type searchDebounceFireMsg struct {
	seq int
}
