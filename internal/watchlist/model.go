package watchlist

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Repository is the store contract the view-model drives
type Repository interface {
	GetAll() []domain.SavedMovie
	Add(movie domain.SavedMovie) ([]domain.SavedMovie, error)
	Remove(movieID int) ([]domain.SavedMovie, error)
	Contains(movieID int) bool
}

// Snapshot is what the UI renders
type Snapshot struct {
	Movies []domain.SavedMovie
	Ready  bool
	Err    error // Last failed mutation, nil after a successful one
}

// Model bridges the Store to UI state.
// The published list is always the list the store returned, never an optimistic guess.
type Model struct {
	repo   Repository
	logger *slog.Logger

	activate sync.Once

	mu    sync.RWMutex
	list  []domain.SavedMovie
	ready bool
	err   error
	gen   uint64 // Bumped on every mutation publish

	updates chan Snapshot
}

// NewModel creates a view-model; call Activate to load the list
func NewModel(repo Repository, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		repo:    repo,
		logger:  logger,
		list:    []domain.SavedMovie{},
		updates: make(chan Snapshot, 1),
	}
}

// Activate loads the list on first call. Later calls do nothing.
func (m *Model) Activate() {
	m.activate.Do(m.Refresh)
}

// Refresh reloads the list from the store and marks the model ready
func (m *Model) Refresh() {
	m.mu.RLock()
	gen := m.gen
	m.mu.RUnlock()

	list := m.repo.GetAll()

	m.mu.Lock()
	defer m.mu.Unlock()

	// A mutation that finished while we were reading already published newer state
	if m.gen == gen {
		m.list = list
	}
	m.ready = true
	m.publishLocked()
	m.logger.Debug("watchlist loaded", "count", len(m.list))
}

// List returns a copy of the current snapshot
func (m *Model) List() []domain.SavedMovie {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.list)
}

// Ready reports whether the first load has completed; it never reverts
func (m *Model) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Err returns the last mutation failure
func (m *Model) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Snapshot returns the full current state
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Updates delivers the latest snapshot after every change.
// Only the newest snapshot is buffered.
func (m *Model) Updates() <-chan Snapshot {
	return m.updates
}

// Add saves a movie and publishes the store's resulting list
func (m *Model) Add(movie domain.SavedMovie) error {
	list, err := m.repo.Add(movie)
	m.apply(list, err)
	return err
}

// Remove deletes a movie and publishes the store's resulting list
func (m *Model) Remove(movieID int) error {
	list, err := m.repo.Remove(movieID)
	m.apply(list, err)
	return err
}

// Toggle adds the movie when missing and removes it otherwise.
// It returns whether the movie is saved afterwards.
func (m *Model) Toggle(movie domain.SavedMovie) (bool, error) {
	if m.Has(movie.ID) {
		if err := m.Remove(movie.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := m.Add(movie); err != nil {
		return false, err
	}
	return true, nil
}

// Has asks the store directly so it reflects durable state even if the
// snapshot is momentarily stale.
func (m *Model) Has(movieID int) bool {
	return m.repo.Contains(movieID)
}

func (m *Model) apply(list []domain.SavedMovie, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.logger.Warn("watchlist mutation failed", "error", err)
	}
	if list != nil {
		m.list = list
	}
	m.err = err
	m.gen++
	m.publishLocked()
}

func (m *Model) snapshotLocked() Snapshot {
	return Snapshot{Movies: clone(m.list), Ready: m.ready, Err: m.err}
}

// publishLocked replaces any unread snapshot with the current one
func (m *Model) publishLocked() {
	select {
	case <-m.updates:
	default:
	}
	m.updates <- m.snapshotLocked()
}

func clone(list []domain.SavedMovie) []domain.SavedMovie {
	out := make([]domain.SavedMovie, len(list))
	copy(out, list)
	return out
}
