package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gatos/internal/domain"
	"github.com/mmcdole/gatos/internal/gallery"
	"github.com/mmcdole/gatos/internal/tui/styles"
)

const (
	// Title is the static header text
	Title = "Gatos Fofos 🐱"

	// SavedMarker tells the user favorites are written to disk
	SavedMarker = "favorites saved"
)

// View renders the gallery screen
func (m Model) View() string {
	header := styles.HeaderStyle.Width(m.Width).Render(Title)

	if m.ShowHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderHelp())
	}

	var body string
	switch m.State.Phase {
	case gallery.PhaseLoaded:
		body = m.renderCards()
	case gallery.PhaseFailed:
		body = m.renderFailure()
	default:
		// Loading gate: nothing but the indicator
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderLoading())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderLoading() string {
	return "\n  " + m.spinner.View() + " " + styles.SubtitleStyle.Render("Fetching cats...")
}

func (m Model) renderFailure() string {
	msg := "unknown error"
	if m.State.Err != nil {
		msg = m.State.Err.Error()
	}
	return "\n  " + styles.ErrorStyle.Render("Could not load cats: "+msg) + "\n"
}

func (m Model) renderCards() string {
	if len(m.visible) == 0 {
		text := "No cats to show."
		switch {
		case m.FavoritesOnly:
			text = "No favorites in this batch."
		case m.filterInput.Value() != "":
			text = "No cats match the filter."
		}
		return "\n  " + styles.DimStyle.Render(text) + "\n"
	}

	end := m.offset + m.pageSize()
	if end > len(m.visible) {
		end = len(m.visible)
	}

	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.renderCard(i))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderCard renders the visible card at position i
func (m Model) renderCard(i int) string {
	match := m.visible[i]
	img := m.State.Images[match.Index]
	inner := m.Width - 4 // border + padding
	idMatches, breedMatches := splitLabelMatches(img, match.MatchedIndexes)

	idLine := styles.FavoriteGlyph(m.State.IsFavorite(img.ID)) + " ID: " + highlight(img.ID, idMatches)

	urlLine := styles.DimStyle.Render(styles.Truncate(img.URL, inner))

	var detailLine string
	dims := img.Dimensions()
	if dims != "" {
		detailLine = styles.SubtitleStyle.Render(dims)
	}
	if breeds := img.BreedList(); breeds != "" {
		if dims != "" {
			detailLine += styles.SubtitleStyle.Render(" · ")
		}
		room := inner - len([]rune(dims)) - 3
		if shown := styles.Truncate(breeds, room); shown != breeds {
			detailLine += styles.SubtitleStyle.Render(shown)
		} else {
			detailLine += highlight(breeds, breedMatches)
		}
	}

	style := styles.CardStyle
	if i == m.cursor {
		style = styles.CardSelectedStyle
	}
	return style.Width(m.Width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, idLine, urlLine, detailLine))
}

// splitLabelMatches maps byte offsets into img.Label() onto the id and the
// breed list, which are rendered on separate lines
func splitLabelMatches(img domain.Image, positions []int) (id, breeds []int) {
	breedStart := len(img.ID) + 1
	for _, p := range positions {
		switch {
		case p < len(img.ID):
			id = append(id, p)
		case p >= breedStart:
			breeds = append(breeds, p-breedStart)
		}
	}
	return id, breeds
}

// highlight styles the runes of s that start at the given byte offsets
func highlight(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.Filtering {
		return m.filterInput.View()
	}

	var parts []string
	if m.State.Phase == gallery.PhaseLoaded {
		fav := 0
		for _, img := range m.State.Images {
			if m.State.IsFavorite(img.ID) {
				fav++
			}
		}
		parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("%d/%d cats · %d %s", len(m.visible), len(m.State.Images), fav, styles.FavoriteChar)))
		if m.GallerySvc.FavoritesPersistent() {
			parts = append(parts, styles.DimStyle.Render(SavedMarker))
		}
	}
	if q := m.filterInput.Value(); q != "" {
		parts = append(parts, styles.DimStyle.Render("filter: "+q))
	}
	if m.FavoritesOnly {
		parts = append(parts, styles.DimStyle.Render("favorites only"))
	}

	if m.StatusMsg != "" {
		style := styles.SubtitleStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		parts = append(parts, style.Render(m.StatusMsg))
	} else {
		parts = append(parts, m.help.ShortHelpView(Keys.ShortHelp()))
	}

	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	return "\n" + m.help.FullHelpView(Keys.FullHelp()) + "\n\n" + styles.DimStyle.Render("press ? to close")
}
