package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gatos/internal/domain"
	"github.com/mmcdole/gatos/internal/service"
)

// statusTTL is how long a footer status message stays visible
const statusTTL = 3 * time.Second

// Command factories for async operations

// InitializeCmd runs the gallery's load-on-start fetch
func InitializeCmd(svc *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		return BatchLoadedMsg{Outcome: svc.Initialize(context.Background())}
	}
}

// OpenImageCmd hands an image to the external viewer
func OpenImageCmd(opener ImageOpener, img domain.Image) tea.Cmd {
	return func() tea.Msg {
		return ImageOpenedMsg{ID: img.ID, Err: opener.Open(img.URL)}
	}
}

// ClearStatusCmd clears the status after statusTTL unless a newer one replaced it
func ClearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
