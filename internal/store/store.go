package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketDetails = []byte("details")
)

var allBuckets = [][]byte{bucketSession, bucketDetails}

const sessionKey = "last"

// MovieStore implements domain.Store using BoltDB.
type MovieStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewMovieStore opens marquee.db inside cacheDir. An empty cacheDir
// yields a memory-only store.
func NewMovieStore(cacheDir string) (*MovieStore, error) {
	if cacheDir == "" {
		// Memory-only mode (no persistence)
		return &MovieStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(cacheDir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &MovieStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *MovieStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *MovieStore) get(bucket []byte, key string, dest any) bool {
	ck := cacheKey(bucket, key)

	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *MovieStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *MovieStore) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, cacheKey(bucket, key))
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Session ===

// LoadSession returns the snapshot saved by the previous run
func (s *MovieStore) LoadSession() (*domain.Snapshot, bool) {
	var snap domain.Snapshot
	if !s.get(bucketSession, sessionKey, &snap) {
		return nil, false
	}
	if !snap.Order.Valid() {
		return nil, false
	}
	if snap.Movies == nil {
		snap.Movies = []domain.Movie{}
	}
	return &snap, true
}

func (s *MovieStore) SaveSession(snap domain.Snapshot) error {
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}
	return s.set(bucketSession, sessionKey, snap)
}

func (s *MovieStore) ClearSession() error {
	return s.delete(bucketSession, sessionKey)
}

// === Details ===

func (s *MovieStore) GetDetails(id int64) (*domain.MovieDetails, bool) {
	var details domain.MovieDetails
	if !s.get(bucketDetails, detailsKey(id), &details) {
		return nil, false
	}
	return &details, true
}

func (s *MovieStore) SaveDetails(details *domain.MovieDetails) error {
	if details == nil {
		return fmt.Errorf("nil details")
	}
	return s.set(bucketDetails, detailsKey(details.ID), details)
}

func detailsKey(id int64) string {
	return "movie:" + strconv.FormatInt(id, 10)
}

// InvalidateAll wipes every bucket and the memory cache
func (s *MovieStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DetailsCount reports how many movies have cached details
func (s *MovieStore) DetailsCount() int {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		n := 0
		prefix := cacheKey(bucketDetails, "")
		for k := range s.cache {
			if strings.HasPrefix(k, prefix) {
				n++
			}
		}
		return n
	}

	n := 0
	s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketDetails); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}
