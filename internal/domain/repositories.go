package domain

import (
	"context"
)

// ImageRepository provides access to a remote image source
type ImageRepository interface {
	// Search returns up to limit images in source order
	Search(ctx context.Context, limit int) ([]Image, error)
}

// FavoritesStore keeps the set of favorite image ids
type FavoritesStore interface {
	// Load returns every stored favorite id
	Load() (map[string]bool, error)
	Add(id string) error
	Remove(id string) error
	Close() error
}
