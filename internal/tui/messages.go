package tui

import "github.com/mmcdole/gatos/internal/domain"

// Message types for the TUI

// BatchLoadedMsg carries the outcome of a load, successful or not
type BatchLoadedMsg struct {
	Outcome domain.FetchOutcome
}

// ImageOpenedMsg signals that the external viewer was launched (or failed to)
type ImageOpenedMsg struct {
	ID  string
	Err error
}

// ClearStatusMsg clears the footer status once it has been shown long enough
type ClearStatusMsg struct {
	Seq int
}
