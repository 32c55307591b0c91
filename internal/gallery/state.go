// Package gallery holds the gallery screen state and its pure transitions.
// Every transition takes a State by value and returns the next State; none of
// them mutate their input, so a State can be shared freely between the TUI and
// tests.
package gallery

import (
	"github.com/mmcdole/gatos/internal/domain"
)

// Phase is the load lifecycle of the gallery
type Phase int

const (
	PhaseNotLoaded Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotLoaded:
		return "not-loaded"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Favorites is a set of image ids
type Favorites map[string]struct{}

// Has reports membership of id
func (f Favorites) Has(id string) bool {
	_, ok := f[id]
	return ok
}

// IDs returns the members in no particular order
func (f Favorites) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	return ids
}

func (f Favorites) clone() Favorites {
	out := make(Favorites, len(f)+1)
	for id := range f {
		out[id] = struct{}{}
	}
	return out
}

// State is everything the gallery screen renders from
type State struct {
	Phase     Phase
	Images    []domain.Image
	Favorites Favorites
	Err       error
}

// New returns the initial state, optionally seeded with favorite ids
func New(favorites ...string) State {
	fav := make(Favorites, len(favorites))
	for _, id := range favorites {
		fav[id] = struct{}{}
	}
	return State{Phase: PhaseNotLoaded, Favorites: fav}
}

// Loading is true while a fetch is in flight
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// IsFavorite reports whether id is in the favorites set
func (s State) IsFavorite(id string) bool {
	return s.Favorites.Has(id)
}

// LoadStarted moves the state into Loading. The image list is left as-is so a
// failed reload keeps whatever was on screen before. Calling it while a load
// is already in flight changes nothing.
func LoadStarted(s State) State {
	if s.Phase == PhaseLoading {
		return s
	}
	s.Phase = PhaseLoading
	s.Err = nil
	return s
}

// LoadSucceeded replaces the image list wholesale with images
func LoadSucceeded(s State, images []domain.Image) State {
	batch := make([]domain.Image, len(images))
	copy(batch, images)
	s.Images = batch
	s.Phase = PhaseLoaded
	s.Err = nil
	return s
}

// LoadFailed records err and leaves the image list untouched
func LoadFailed(s State, err error) State {
	s.Phase = PhaseFailed
	s.Err = err
	return s
}

// Apply folds the outcome of a fetch into s
func Apply(s State, outcome domain.FetchOutcome) State {
	if !outcome.OK() {
		return LoadFailed(s, outcome.Err)
	}
	return LoadSucceeded(s, outcome.Images)
}

// ToggleFavorite flips membership of id. Toggling twice is the identity.
func ToggleFavorite(s State, id string) State {
	fav := s.Favorites.clone()
	if fav.Has(id) {
		delete(fav, id)
	} else {
		fav[id] = struct{}{}
	}
	s.Favorites = fav
	return s
}

// Card is one rendered entry of the gallery
type Card struct {
	Image    domain.Image
	Favorite bool
}

// Cards projects the state into renderable cards.
// Returns nil unless the gallery is Loaded.
func Cards(s State) []Card {
	if s.Phase != PhaseLoaded {
		return nil
	}
	cards := make([]Card, len(s.Images))
	for i, img := range s.Images {
		cards[i] = Card{Image: img, Favorite: s.Favorites.Has(img.ID)}
	}
	return cards
}
