package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gatos/internal/domain"
	"github.com/mmcdole/gatos/internal/store"
)

// GalleryService loads image batches and keeps favorites in the store
type GalleryService struct {
	repo      domain.ImageRepository
	favorites domain.FavoritesStore
	limit     int
	timeout   time.Duration
	logger    *slog.Logger

	initOnce sync.Once
	initial  domain.FetchOutcome
}

// NewGalleryService creates a new gallery service.
// limit is the page size of every fetch; timeout bounds each load (0 = none).
// A nil favorites store keeps favorites in memory.
func NewGalleryService(repo domain.ImageRepository, favorites domain.FavoritesStore, limit int, timeout time.Duration, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	if favorites == nil {
		// Memory-only mode never fails to open
		favorites, _ = store.NewFavoritesStore("")
	}
	return &GalleryService{
		repo:      repo,
		favorites: favorites,
		limit:     limit,
		timeout:   timeout,
		logger:    logger,
	}
}

// Initialize performs the load-on-start fetch. Only the first call reaches the
// source; later calls return the first outcome.
func (s *GalleryService) Initialize(ctx context.Context) domain.FetchOutcome {
	s.initOnce.Do(func() {
		s.initial = s.LoadBatch(ctx)
	})
	return s.initial
}

// LoadBatch fetches one batch of images. Failures are logged and returned in
// the outcome; this never panics or returns a bare error.
func (s *GalleryService) LoadBatch(ctx context.Context) (outcome domain.FetchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("image source panicked", "panic", r)
			outcome = domain.Failed(domain.ErrFetchFailed)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	images, err := s.repo.Search(ctx, s.limit)
	if err != nil {
		s.logger.Error("error fetching cat images", "error", err, "limit", s.limit)
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		return domain.Failed(err)
	}

	s.logger.Info("loaded image batch", "count", len(images), "duration", time.Since(start))
	return domain.Succeeded(images)
}

// Favorites returns the favorite ids, sorted
func (s *GalleryService) Favorites() []string {
	set, err := s.favorites.Load()
	if err != nil {
		s.logger.Warn("failed to load favorites", "error", err)
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsFavorite reports whether id is a favorite
func (s *GalleryService) IsFavorite(id string) bool {
	set, err := s.favorites.Load()
	if err != nil {
		s.logger.Warn("failed to load favorites", "error", err)
		return false
	}
	return set[id]
}

// ToggleFavorite flips the membership of id and returns the new membership.
// Storage errors are logged only: the flip still holds for the session.
func (s *GalleryService) ToggleFavorite(id string) bool {
	favorite := !s.IsFavorite(id)

	var err error
	if favorite {
		err = s.favorites.Add(id)
	} else {
		err = s.favorites.Remove(id)
	}
	if err != nil {
		s.logger.Warn("failed to save favorite", "id", id, "favorite", favorite, "error", err)
	} else {
		s.logger.Debug("favorite updated", "id", id, "favorite", favorite)
	}
	return favorite
}

// FavoritesPersistent reports whether favorites outlive the process
func (s *GalleryService) FavoritesPersistent() bool {
	p, ok := s.favorites.(interface{ Persistent() bool })
	return ok && p.Persistent()
}
