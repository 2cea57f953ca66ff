package watchlist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// StorageKey is the single blob key holding the whole watchlist
const StorageKey = "WATCHLIST_V1"

// Store is durable CRUD over the watchlist.
// Every operation is a full read-modify-write of one JSON blob; there is no cache.
// Mutations are serialized by mu so concurrent adds cannot lose each other's writes.
type Store struct {
	blobs  domain.BlobStore
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a watchlist store on top of a blob store
func NewStore(blobs domain.BlobStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{blobs: blobs, logger: logger}
}

// GetAll returns the persisted watchlist.
// Missing or unreadable data is reported as an empty list.
func (s *Store) GetAll() []domain.SavedMovie {
	return s.load()
}

// Add prepends movie unless a movie with the same ID is already saved.
// An existing ID returns the current list without writing.
func (s *Store) Add(movie domain.SavedMovie) ([]domain.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	if indexOf(list, movie.ID) >= 0 {
		s.logger.Debug("watchlist add skipped, already saved", "id", movie.ID)
		return list, nil
	}

	next := make([]domain.SavedMovie, 0, len(list)+1)
	next = append(next, movie)
	next = append(next, list...)

	if err := s.save(next); err != nil {
		return list, err
	}
	s.logger.Debug("watchlist add", "id", movie.ID, "count", len(next))
	return next, nil
}

// Remove drops every entry with the given ID and writes the result,
// even when nothing matched.
func (s *Store) Remove(movieID int) ([]domain.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	next := make([]domain.SavedMovie, 0, len(list))
	for _, m := range list {
		if m.ID != movieID {
			next = append(next, m)
		}
	}

	if err := s.save(next); err != nil {
		return list, err
	}
	s.logger.Debug("watchlist remove", "id", movieID, "count", len(next))
	return next, nil
}

// Contains reports whether a movie with the given ID is saved
func (s *Store) Contains(movieID int) bool {
	return indexOf(s.load(), movieID) >= 0
}

func (s *Store) load() []domain.SavedMovie {
	raw, ok, err := s.blobs.Read(StorageKey)
	if err != nil {
		s.logger.Warn("failed to read watchlist, treating as empty", "error", err)
		return []domain.SavedMovie{}
	}
	if !ok || raw == "" {
		return []domain.SavedMovie{}
	}

	var list []domain.SavedMovie
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("corrupt watchlist data, treating as empty", "error", err, "bytes", len(raw))
		return []domain.SavedMovie{}
	}
	if list == nil {
		list = []domain.SavedMovie{}
	}
	return list
}

func (s *Store) save(list []domain.SavedMovie) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWatchlistWrite, err)
	}
	if err := s.blobs.Write(StorageKey, string(data)); err != nil {
		s.logger.Error("failed to write watchlist", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrWatchlistWrite, err)
	}
	return nil
}

func indexOf(list []domain.SavedMovie, movieID int) int {
	for i, m := range list {
		if m.ID == movieID {
			return i
		}
	}
	return -1
}
