package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/cinemaddict/internal/app"
	"github.com/pders01/cinemaddict/internal/config"
	"github.com/pders01/cinemaddict/internal/model"
)

// keyMap holds the configured bindings.
type keyMap struct {
	Quit        key.Binding
	Search      key.Binding
	Open        key.Binding
	Watchlist   key.Binding
	Watched     key.Binding
	Favorite    key.Binding
	ShowMore    key.Binding
	NextFilter  key.Binding
	PrevFilter  key.Binding
	NextSort    key.Binding
	Comment     key.Binding
	Emotion     key.Binding
	Delete      key.Binding
	NextComment key.Binding
	PrevComment key.Binding
	Submit      key.Binding
	Back        key.Binding
	Help        key.Binding
	Up          key.Binding
	Down        key.Binding
}

func newKeyMap(cfg *config.Config, modifierKey string) keyMap {
	b := cfg.Keys.Bindings
	bind := func(k, help string, extra ...string) key.Binding {
		return key.NewBinding(
			key.WithKeys(append([]string{k}, extra...)...),
			key.WithHelp(k, help),
		)
	}
	return keyMap{
		Quit:        bind(b.Quit, "quit", "ctrl+c"),
		Search:      bind(b.Search, "search"),
		Open:        bind(b.Open, "details"),
		Watchlist:   bind(b.Watchlist, "watchlist"),
		Watched:     bind(b.Watched, "watched"),
		Favorite:    bind(b.Favorite, "favorite"),
		ShowMore:    bind(b.ShowMore, "show more"),
		NextFilter:  bind(b.NextFilter, "filter"),
		PrevFilter:  bind("shift+"+b.NextFilter, "prev filter"),
		NextSort:    bind(b.NextSort, "sort"),
		Comment:     bind(b.Comment, "comment"),
		Emotion:     bind(b.Emotion, "emotion"),
		Delete:      bind(b.Delete, "delete comment"),
		NextComment: bind("]", "next comment", "right"),
		PrevComment: bind("[", "prev comment", "left"),
		Submit:      bind(modifierKey+"s", "send comment"),
		Back:        bind(b.Back, "back"),
		Help:        bind(b.Help, "more keys"),
		Up:          bind("up", "up", "k"),
		Down:        bind("down", "down", "j"),
	}
}

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyMap
}

func NewKeyHandler(a *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{
		app:         a,
		config:      cfg,
		modifierKey: modifierKey,
		keys:        newKeyMap(cfg, modifierKey),
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kh.app.err = nil

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if m, cmd, handled := kh.handleCustomKeys(msg); handled {
		return m, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewComment:
		return kh.app.commentInput.Focused()
	case ViewSearch:
		return kh.app.searchInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return kh.navigateBack()
	case "ctrl+c":
		return kh.app, tea.Quit
	case "enter":
		return kh.handleTextInputEnter()
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewComment:
		text := strings.TrimSpace(kh.app.commentInput.Value())
		if text == "" {
			kh.app.setStatus(MsgEmptyComment, StatusWarn)
			return kh.app, nil
		}
		kh.app.commentInput.Blur()
		kh.app.view = ViewDetails
		kh.app.post(func(c *app.App) {
			c.TypeComment(text)
			c.SubmitComment()
		})
		kh.app.setStatus(MsgSaving, StatusInfo)
		return kh.app, nil

	case ViewSearch:
		// Keep the query and hand the keys back to the board.
		kh.app.searchInput.Blur()
		kh.app.view = ViewBoard
		query := kh.sanitizeSearchInput(kh.app.searchInput.Value())
		kh.app.post(func(c *app.App) { c.Search(query) })
		return kh.app, nil

	default:
		return kh.app, nil
	}
}

// delegateToTextInput passes the key to the focused text input.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewComment:
		newInput, cmd := kh.app.commentInput.Update(msg)
		kh.app.commentInput = newInput
		return kh.app, cmd

	case ViewSearch:
		prev := kh.sanitizeSearchInput(kh.app.searchInput.Value())
		newInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newInput

		newVal := kh.sanitizeSearchInput(kh.app.searchInput.Value())
		if newVal != prev {
			kh.app.pendingSearchQuery = newVal
			kh.app.searchSeq++
			seq := kh.app.searchSeq
			return kh.app, tea.Batch(cmd, tea.Tick(kh.app.searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceFireMsg{seq: seq}
			}))
		}
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, kh.keys.Quit):
		return kh.app, tea.Quit, true
	case key.Matches(msg, kh.keys.Help):
		kh.app.help.ShowAll = !kh.app.help.ShowAll
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Back):
		m, cmd := kh.navigateBack()
		return m, cmd, true
	}

	switch kh.app.view {
	case ViewBoard, ViewSearch:
		return kh.handleBoardKeys(msg)
	case ViewDetails:
		return kh.handleDetailsKeys(msg)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	snap := kh.app.snap
	selected, hasSelected := kh.app.selectedFilm()

	switch {
	case key.Matches(msg, kh.keys.Search):
		m, cmd := kh.enterSearchMode()
		return m, cmd, true
	case key.Matches(msg, kh.keys.Open):
		if hasSelected {
			kh.app.post(func(c *app.App) { c.OpenFilm(selected.ID) })
		}
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Watchlist):
		return kh.toggle(selected.ID, hasSelected, model.FilterWatchlist)
	case key.Matches(msg, kh.keys.Watched):
		return kh.toggle(selected.ID, hasSelected, model.FilterHistory)
	case key.Matches(msg, kh.keys.Favorite):
		return kh.toggle(selected.ID, hasSelected, model.FilterFavorites)
	case key.Matches(msg, kh.keys.ShowMore):
		if snap.HasMore {
			kh.app.post(func(c *app.App) { c.ShowMore() })
		}
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.NextFilter):
		next := cycle(model.FilterTypes, snap.Filter, 1)
		kh.app.post(func(c *app.App) { c.SelectFilter(next) })
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.PrevFilter):
		prev := cycle(model.FilterTypes, snap.Filter, -1)
		kh.app.post(func(c *app.App) { c.SelectFilter(prev) })
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.NextSort):
		if len(snap.Cards) == 0 {
			return kh.app, nil, true
		}
		next := cycle(model.SortTypes, snap.Sort, 1)
		kh.app.post(func(c *app.App) { c.SelectSort(next) })
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	popup := kh.app.snap.Popup
	if popup == nil {
		return kh.app, nil, false
	}
	id := popup.Film.ID

	switch {
	case key.Matches(msg, kh.keys.Watchlist):
		return kh.toggle(id, true, model.FilterWatchlist)
	case key.Matches(msg, kh.keys.Watched):
		return kh.toggle(id, true, model.FilterHistory)
	case key.Matches(msg, kh.keys.Favorite):
		return kh.toggle(id, true, model.FilterFavorites)
	case key.Matches(msg, kh.keys.Comment):
		if popup.State.IsDisabled {
			return kh.app, nil, true
		}
		kh.app.view = ViewComment
		kh.app.commentInput.SetValue(popup.State.Comment)
		kh.app.commentInput.CursorEnd()
		return kh.app, kh.app.commentInput.Focus(), true
	case key.Matches(msg, kh.keys.Emotion):
		next := cycle(model.Emotions, popup.State.Emotion, 1)
		kh.app.post(func(c *app.App) { c.PickEmotion(next) })
		kh.app.setStatus(MsgEmotion(string(next)), StatusInfo)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Submit):
		kh.app.post(func(c *app.App) { c.SubmitComment() })
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.NextComment):
		kh.app.moveCommentCursor(1)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.PrevComment):
		kh.app.moveCommentCursor(-1)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Delete):
		comment, ok := kh.app.selectedComment()
		if !ok {
			kh.app.setStatus(MsgNoComment, StatusWarn)
			return kh.app, nil, true
		}
		kh.app.post(func(c *app.App) { c.DeleteComment(comment.ID) })
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) toggle(id string, ok bool, control model.FilterType) (tea.Model, tea.Cmd, bool) {
	if ok {
		kh.app.post(func(c *app.App) { c.ToggleControl(id, control) })
	}
	return kh.app, nil, true
}

// delegateToCharm lets Charm handle all keys we don't intercept.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch kh.app.view {
	case ViewBoard, ViewSearch:
		kh.app.cardList, cmd = kh.app.cardList.Update(msg)
		return kh.app, cmd

	case ViewDetails:
		prev := kh.app.viewport.YOffset
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		if top := kh.app.viewport.YOffset; top != prev {
			kh.app.post(func(c *app.App) { c.ScrollPopup(top) })
		}
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

// navigateBack implements smart back navigation.
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewComment:
		kh.app.commentInput.Blur()
		kh.app.view = ViewDetails
		// Keep what was typed as the popup's draft.
		text := kh.app.commentInput.Value()
		kh.app.post(func(c *app.App) { c.TypeComment(text) })
		return kh.app, nil

	case ViewDetails:
		kh.app.post(func(c *app.App) { c.ClosePopup() })
		return kh.app, nil

	case ViewSearch:
		kh.app.view = ViewBoard
		kh.app.searchInput.Blur()
		kh.app.searchInput.Reset()
		kh.app.searchSeq++
		kh.app.post(func(c *app.App) { c.Search("") })
		return kh.app, nil

	case ViewBoard:
		if kh.app.snap.Query != "" {
			kh.app.searchInput.Reset()
			kh.app.post(func(c *app.App) { c.Search("") })
		}
		return kh.app, nil

	default:
		return kh.app, tea.Quit
	}
}

// enterSearchMode focuses the search box above the board.
func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	kh.app.view = ViewSearch
	kh.app.searchInput.SetValue(kh.app.snap.Query)
	kh.app.searchInput.CursorEnd()
	kh.app.setStatus(kh.app.searchEngineStatus(), StatusInfo)
	return kh.app, kh.app.searchInput.Focus()
}

// sanitizeSearchInput sanitizes and limits search input length
func (kh *KeyHandler) sanitizeSearchInput(input string) string {
	input = strings.TrimSpace(input)

	if len(input) > 256 {
		input = input[:256]
	}

	input = strings.ReplaceAll(input, "\n", " ")
	input = strings.ReplaceAll(input, "\r", " ")
	input = strings.ReplaceAll(input, "\t", " ")

	for strings.Contains(input, "  ") {
		input = strings.ReplaceAll(input, "  ", " ")
	}

	return strings.TrimSpace(input)
}

// ShortHelp implements help.KeyMap for the current view.
func (kh *KeyHandler) ShortHelp() []key.Binding {
	k := kh.keys
	switch kh.app.view {
	case ViewBoard:
		return []key.Binding{k.Open, k.NextFilter, k.NextSort, k.ShowMore, k.Search, k.Help}
	case ViewDetails:
		return []key.Binding{k.Comment, k.Emotion, k.Delete, k.Back, k.Help}
	case ViewComment:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "keep draft")),
		}
	case ViewSearch:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return nil
}

// FullHelp implements help.KeyMap for the current view.
func (kh *KeyHandler) FullHelp() [][]key.Binding {
	k := kh.keys
	switch kh.app.view {
	case ViewBoard:
		return [][]key.Binding{
			{k.Up, k.Down, k.Open, k.ShowMore},
			{k.Watchlist, k.Watched, k.Favorite},
			{k.NextFilter, k.PrevFilter, k.NextSort, k.Search},
			{k.Back, k.Help, k.Quit},
		}
	case ViewDetails:
		return [][]key.Binding{
			{k.Up, k.Down, k.Watchlist, k.Watched, k.Favorite},
			{k.Comment, k.Emotion, k.Submit},
			{k.PrevComment, k.NextComment, k.Delete},
			{k.Back, k.Help, k.Quit},
		}
	}
	return [][]key.Binding{kh.ShortHelp()}
}

// cycle returns the element step places after cur in values, wrapping. A
// cur missing from values counts as sitting just before the first one.
func cycle[T comparable](values []T, cur T, step int) T {
	i := -1
	for j, v := range values {
		if v == cur {
			i = j
			break
		}
	}
	n := len(values)
	if i < 0 && step < 0 {
		i = 0
	}
	return values[((i+step)%n+n)%n]
}
