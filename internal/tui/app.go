package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gatos/internal/gallery"
	"github.com/mmcdole/gatos/internal/search"
	"github.com/mmcdole/gatos/internal/service"
	"github.com/mmcdole/gatos/internal/tui/styles"
)

// ImageOpener launches an image URL outside the terminal
type ImageOpener interface {
	Open(url string) error
}

// Layout constants
const (
	HeaderHeight = 1
	FooterHeight = 1

	// Border (2) plus id, url and detail lines
	CardHeight = 5

	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the main Bubble Tea model for the gallery screen
type Model struct {
	// Services
	GallerySvc *service.GalleryService
	Opener     ImageOpener

	// Gallery state; all mutations go through the gallery package transitions
	State gallery.State

	// Cards currently shown, after filter and favorites-only are applied
	visible []search.Match
	cursor  int
	offset  int

	// UI components
	spinner     spinner.Model
	help        help.Model
	filterInput textinput.Model

	// UI state
	Width         int
	Height        int
	Filtering     bool
	FavoritesOnly bool
	ShowHelp      bool
	StatusMsg     string
	StatusIsErr   bool
	statusSeq     int

	logger *slog.Logger
}

// NewModel creates the gallery model. The state starts in Loading because Init
// fires the load-on-start fetch.
func NewModel(svc *service.GalleryService, opener ImageOpener, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.Placeholder = "id or breed..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle

	return Model{
		GallerySvc:  svc,
		Opener:      opener,
		State:       gallery.LoadStarted(gallery.New(svc.Favorites()...)),
		spinner:     sp,
		help:        help.New(),
		filterInput: ti,
		Width:       defaultWidth,
		Height:      defaultHeight,
		logger:      logger,
	}
}

// Init starts the load-on-start fetch and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		InitializeCmd(m.GallerySvc),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.State.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BatchLoadedMsg:
		m.State = gallery.Apply(m.State, msg.Outcome)
		if !msg.Outcome.OK() {
			m.logger.Error("gallery load failed", "error", msg.Outcome.Err)
		}
		m.cursor, m.offset = 0, 0
		m.refreshVisible()
		return m, nil

	case ImageOpenedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to open image", "id", msg.ID, "error", msg.Err)
			return m.setStatus("Could not open "+msg.ID+": "+msg.Err.Error(), true)
		}
		return m.setStatus("Opened "+msg.ID, false)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	// No card interaction until a batch is on screen
	if m.State.Phase != gallery.PhaseLoaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, Keys.Home):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, Keys.End):
		m.moveCursor(len(m.visible))
	case key.Matches(msg, Keys.Favorite):
		m.toggleSelected()
	case key.Matches(msg, Keys.Open):
		if img, ok := m.selected(); ok && m.Opener != nil {
			return m, OpenImageCmd(m.Opener, img.Image)
		}
	case key.Matches(msg, Keys.FavoritesOnly):
		m.FavoritesOnly = !m.FavoritesOnly
		m.refreshVisible()
	case key.Matches(msg, Keys.Filter):
		m.Filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Escape):
		m.filterInput.SetValue("")
		m.FavoritesOnly = false
		m.refreshVisible()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.refreshVisible()
		return m, nil
	case tea.KeyEnter:
		m.Filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor, m.offset = 0, 0
	m.refreshVisible()
	return m, cmd
}

// toggleSelected flips the favorite state of the card under the cursor
func (m *Model) toggleSelected() {
	card, ok := m.selected()
	if !ok {
		return
	}
	id := card.Image.ID
	favorite := m.GallerySvc.ToggleFavorite(id)
	if m.State.IsFavorite(id) != favorite {
		m.State = gallery.ToggleFavorite(m.State, id)
	}
	if m.FavoritesOnly {
		m.refreshVisible()
	}
}

// selected returns the card under the cursor
func (m Model) selected() (gallery.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return gallery.Card{}, false
	}
	img := m.State.Images[m.visible[m.cursor].Index]
	return gallery.Card{Image: img, Favorite: m.State.IsFavorite(img.ID)}, true
}

// refreshVisible recomputes which cards are shown from the filter query and
// the favorites-only toggle
func (m *Model) refreshVisible() {
	matches := search.Filter(m.filterInput.Value(), m.State.Images)
	if m.FavoritesOnly {
		kept := matches[:0]
		for _, match := range matches {
			if m.State.IsFavorite(m.State.Images[match.Index].ID) {
				kept = append(kept, match)
			}
		}
		matches = kept
	}
	m.visible = matches
	m.clampScroll()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampScroll()
}

// clampScroll keeps the cursor inside the list and on screen
func (m *Model) clampScroll() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// pageSize is the number of cards that fit between header and footer
func (m Model) pageSize() int {
	n := (m.Height - HeaderHeight - FooterHeight) / CardHeight
	if n < 1 {
		return 1
	}
	return n
}

func (m Model) setStatus(msg string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(m.statusSeq)
}

// Cursor returns the index of the selected card among visible cards
func (m Model) Cursor() int {
	return m.cursor
}

// VisibleIDs returns the ids of the cards currently shown, in order
func (m Model) VisibleIDs() []string {
	indexes := search.Indexes(m.visible)
	ids := make([]string, len(indexes))
	for i, idx := range indexes {
		ids[i] = m.State.Images[idx].ID
	}
	return ids
}
