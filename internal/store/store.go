package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/gatos/internal/adapter"
	bolt "go.etcd.io/bbolt"
)

var bucketFavorites = []byte("favorites")

// favoriteRecord is the value stored per favorite id
type favoriteRecord struct {
	AddedAt int64 `json:"added_at"`
}

// FavoritesStore implements domain.FavoritesStore using BoltDB.
// With no path it keeps favorites in memory only and forgets them on exit.
type FavoritesStore struct {
	db *bolt.DB
	mu sync.RWMutex

	// In-memory view of the favorites set, always authoritative for reads
	ids map[string]favoriteRecord

	now func() time.Time
}

// NewFavoritesStore opens (or creates) the favorites database at path.
// A leading ~ is expanded to the home directory. An empty path selects
// memory-only mode.
func NewFavoritesStore(path string) (*FavoritesStore, error) {
	s := &FavoritesStore{ids: make(map[string]favoriteRecord), now: time.Now}
	if path == "" {
		return s, nil
	}

	path, err := adapter.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketFavorites)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var rec favoriteRecord
			// Unreadable values still count as favorites
			_ = json.Unmarshal(v, &rec)
			s.ids[string(k)] = rec
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

// Persistent reports whether favorites survive a restart
func (s *FavoritesStore) Persistent() bool {
	return s.db != nil
}

func (s *FavoritesStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns a copy of every stored favorite id
func (s *FavoritesStore) Load() (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out, nil
}

// Add marks id as a favorite. Adding an existing id is a no-op.
func (s *FavoritesStore) Add(id string) error {
	s.mu.Lock()
	if _, ok := s.ids[id]; ok {
		s.mu.Unlock()
		return nil
	}
	rec := favoriteRecord{AddedAt: s.now().Unix()}
	s.ids[id] = rec
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Put([]byte(id), data)
	})
}

// Remove unmarks id. Removing an unknown id is a no-op.
func (s *FavoritesStore) Remove(id string) error {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Delete([]byte(id))
	})
}
