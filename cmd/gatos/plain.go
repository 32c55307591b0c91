package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gatos/internal/gallery"
	"github.com/mmcdole/gatos/internal/service"
	"github.com/mmcdole/gatos/internal/tui/styles"
)

// runPlain loads one batch and prints a line per card
func runPlain(ctx context.Context, w io.Writer, svc *service.GalleryService) error {
	state := gallery.LoadStarted(gallery.New(svc.Favorites()...))
	state = gallery.Apply(state, svc.Initialize(ctx))

	if state.Phase == gallery.PhaseFailed {
		return fmt.Errorf("could not load cats: %w", state.Err)
	}

	for _, card := range gallery.Cards(state) {
		glyph := styles.NotFavoriteChar
		if card.Favorite {
			glyph = styles.FavoriteChar
		}
		line := fmt.Sprintf("%s %s %s", glyph, card.Image.ID, card.Image.URL)
		if len(card.Image.Breeds) > 0 {
			line += " (" + strings.Join(card.Image.Breeds, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
