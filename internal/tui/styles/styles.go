package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Tomato     = lipgloss.Color("#FF6347")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
	Pink       = lipgloss.Color("#F472B6")
)

// Header
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Tomato).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1)
)

// Text styles
var (
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Tomato)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)
)

// Raw favorite glyphs (unstyled)
const (
	FavoriteChar    = "♥"
	NotFavoriteChar = "♡"
)

// Favorite indicator styles
var (
	FavoriteStyle    = lipgloss.NewStyle().Foreground(Pink).Bold(true)
	NotFavoriteStyle = lipgloss.NewStyle().Foreground(DimGray)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Tomato).
				Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Tomato)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Tomato).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Tomato).
				Bold(true)
)

// FavoriteGlyph renders the favorite indicator for a card
func FavoriteGlyph(favorite bool) string {
	if favorite {
		return FavoriteStyle.Render(FavoriteChar)
	}
	return NotFavoriteStyle.Render(NotFavoriteChar)
}

// Truncate truncates a string to the given width in runes with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
