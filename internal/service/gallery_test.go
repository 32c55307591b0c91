package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/gatos/internal/adapter"
	"github.com/mmcdole/gatos/internal/domain"
	"github.com/mmcdole/gatos/internal/gallery"
	"github.com/mmcdole/gatos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves queued responses, one per call
type fakeRepo struct {
	calls     atomic.Int32
	limits    []int
	responses []func(ctx context.Context) ([]domain.Image, error)
}

func (f *fakeRepo) Search(ctx context.Context, limit int) ([]domain.Image, error) {
	n := int(f.calls.Add(1)) - 1
	f.limits = append(f.limits, limit)
	if n >= len(f.responses) {
		return nil, errors.New("no response queued")
	}
	return f.responses[n](ctx)
}

func batch(from, to int) func(context.Context) ([]domain.Image, error) {
	return func(context.Context) ([]domain.Image, error) {
		var images []domain.Image
		for i := from; i <= to; i++ {
			images = append(images, domain.Image{ID: fmt.Sprintf("%d", i), URL: fmt.Sprintf("https://cdn.example.com/%d.jpg", i)})
		}
		return images, nil
	}
}

func failing(err error) func(context.Context) ([]domain.Image, error) {
	return func(context.Context) ([]domain.Image, error) { return nil, err }
}

func newService(t *testing.T, repo *fakeRepo) (*GalleryService, *store.FavoritesStore) {
	t.Helper()
	favs, err := store.NewFavoritesStore("")
	require.NoError(t, err)
	return NewGalleryService(repo, favs, adapter.DefaultLimit, 0, adapter.NullLogger()), favs
}

func imageIDs(images []domain.Image) []string {
	ids := make([]string, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	return ids
}

func TestInitialize_FetchesOnce(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){batch(1, 10), batch(11, 20)}}
	svc, _ := newService(t, repo)

	first := svc.Initialize(context.Background())
	second := svc.Initialize(context.Background())

	require.True(t, first.OK())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, []int{10}, repo.limits)
}

func TestLoadBatch_HappyPath(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){batch(1, 10)}}
	svc, _ := newService(t, repo)

	s := gallery.LoadStarted(gallery.New())
	s = gallery.Apply(s, svc.Initialize(context.Background()))

	assert.False(t, s.Loading())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, imageIDs(s.Images))
}

func TestLoadBatch_FavoriteSurvivesReload(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){batch(1, 10), batch(11, 20)}}
	svc, favs := newService(t, repo)

	s := gallery.Apply(gallery.LoadStarted(gallery.New()), svc.Initialize(context.Background()))
	s = gallery.ToggleFavorite(s, "3")
	require.True(t, svc.ToggleFavorite("3"))

	s = gallery.Apply(gallery.LoadStarted(s), svc.LoadBatch(context.Background()))

	assert.Equal(t, "11", s.Images[0].ID)
	assert.True(t, s.IsFavorite("3"))
	stored, _ := favs.Load()
	assert.True(t, stored["3"])
}

func TestLoadBatch_FailureIsReturnedNotRaised(t *testing.T) {
	boom := fmt.Errorf("%w: connection reset", domain.ErrSourceOffline)
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){failing(boom)}}
	svc, _ := newService(t, repo)

	var outcome domain.FetchOutcome
	assert.NotPanics(t, func() {
		outcome = svc.Initialize(context.Background())
	})

	assert.False(t, outcome.OK())
	assert.ErrorIs(t, outcome.Err, domain.ErrFetchFailed)
	assert.Nil(t, outcome.Images)
}

func TestLoadBatch_RecoversFromPanickingSource(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){
		func(context.Context) ([]domain.Image, error) { panic("bad decoder") },
	}}
	svc, _ := newService(t, repo)

	outcome := svc.LoadBatch(context.Background())
	assert.ErrorIs(t, outcome.Err, domain.ErrFetchFailed)
}

func TestLoadBatch_AppliesTimeout(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){
		func(ctx context.Context) ([]domain.Image, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}}
	favs, err := store.NewFavoritesStore("")
	require.NoError(t, err)
	svc := NewGalleryService(repo, favs, 10, 10*time.Millisecond, adapter.NullLogger())

	outcome := svc.LoadBatch(context.Background())
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}

func TestLoadBatch_WrapsForeignErrors(t *testing.T) {
	raw := errors.New("socket closed")
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){failing(raw)}}
	svc, _ := newService(t, repo)

	outcome := svc.LoadBatch(context.Background())

	assert.ErrorIs(t, outcome.Err, domain.ErrFetchFailed)
	assert.ErrorIs(t, outcome.Err, raw)
}

func TestLoadBatch_KeepsAlreadyCategorizedErrors(t *testing.T) {
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){failing(domain.ErrMalformedResponse)}}
	svc, _ := newService(t, repo)

	outcome := svc.LoadBatch(context.Background())

	assert.Equal(t, domain.ErrMalformedResponse, outcome.Err)
}

func TestInitialize_ConcurrentCallersShareOneFetch(t *testing.T) {
	release := make(chan struct{})
	repo := &fakeRepo{responses: []func(context.Context) ([]domain.Image, error){
		func(ctx context.Context) ([]domain.Image, error) {
			<-release
			return batch(1, 2)(ctx)
		},
		batch(3, 4),
	}}
	svc, _ := newService(t, repo)

	var wg sync.WaitGroup
	outcomes := make([]domain.FetchOutcome, 4)
	for i := range outcomes {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = svc.Initialize(context.Background())
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
	for _, o := range outcomes {
		assert.Equal(t, []string{"1", "2"}, imageIDs(o.Images))
	}
}

func TestFavorites(t *testing.T) {
	svc, favs := newService(t, &fakeRepo{})
	require.NoError(t, favs.Add("b"))
	require.NoError(t, favs.Add("a"))

	assert.Equal(t, []string{"a", "b"}, svc.Favorites())
	assert.True(t, svc.IsFavorite("a"))
	assert.False(t, svc.IsFavorite("c"))
}

func TestToggleFavorite(t *testing.T) {
	svc, favs := newService(t, &fakeRepo{})

	assert.True(t, svc.ToggleFavorite("x"))
	assert.True(t, svc.IsFavorite("x"))
	stored, _ := favs.Load()
	assert.Equal(t, map[string]bool{"x": true}, stored)

	assert.False(t, svc.ToggleFavorite("x"))
	assert.False(t, svc.IsFavorite("x"))
	assert.Empty(t, svc.Favorites())
}

func TestToggleFavorite_StoreErrorStillFlips(t *testing.T) {
	svc := NewGalleryService(&fakeRepo{}, brokenStore{}, 10, 0, adapter.NullLogger())

	assert.True(t, svc.ToggleFavorite("x"))
}

func TestNilStoreKeepsFavoritesInMemory(t *testing.T) {
	svc := NewGalleryService(&fakeRepo{}, nil, 10, 0, nil)

	assert.True(t, svc.ToggleFavorite("a"))
	assert.Equal(t, []string{"a"}, svc.Favorites())
	assert.False(t, svc.FavoritesPersistent())
}

func TestFavoritesPersistent(t *testing.T) {
	favs, err := store.NewFavoritesStore(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	defer favs.Close()

	svc := NewGalleryService(&fakeRepo{}, favs, 10, 0, adapter.NullLogger())
	assert.True(t, svc.FavoritesPersistent())
}

// brokenStore fails every write and has nothing stored
type brokenStore struct{}

func (brokenStore) Load() (map[string]bool, error) { return map[string]bool{}, nil }
func (brokenStore) Add(string) error              { return errors.New("disk full") }
func (brokenStore) Remove(string) error           { return errors.New("disk full") }
func (brokenStore) Close() error                  { return nil }
