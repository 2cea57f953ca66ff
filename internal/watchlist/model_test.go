package watchlist

import (
	"errors"
	"sync"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo wraps a Store and counts calls
type countingRepo struct {
	*Store
	mu       sync.Mutex
	getAll   int
	contains int
}

func (r *countingRepo) GetAll() []domain.SavedMovie {
	r.mu.Lock()
	r.getAll++
	r.mu.Unlock()
	return r.Store.GetAll()
}

func (r *countingRepo) Contains(id int) bool {
	r.mu.Lock()
	r.contains++
	r.mu.Unlock()
	return r.Store.Contains(id)
}

func newTestModel(t *testing.T) (*Model, *countingRepo, *fakeBlobs) {
	t.Helper()
	blobs := newFakeBlobs()
	repo := &countingRepo{Store: NewStore(blobs, quietLogger())}
	return NewModel(repo, quietLogger()), repo, blobs
}

func TestModelActivateLoadsOnce(t *testing.T) {
	m, repo, _ := newTestModel(t)
	_, err := repo.Store.Add(inception())
	require.NoError(t, err)

	assert.False(t, m.Ready())
	assert.Empty(t, m.List())

	m.Activate()
	m.Activate()

	assert.True(t, m.Ready())
	assert.Equal(t, 1, repo.getAll)
	assert.Equal(t, []domain.SavedMovie{inception()}, m.List())

	snap := <-m.Updates()
	assert.True(t, snap.Ready)
	assert.Len(t, snap.Movies, 1)
}

func TestModelMutationsPublishStoreResult(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Activate()

	require.NoError(t, m.Add(domain.SavedMovie{ID: 1, Title: "A"}))
	require.NoError(t, m.Add(domain.SavedMovie{ID: 2, Title: "B"}))
	require.NoError(t, m.Add(domain.SavedMovie{ID: 1, Title: "A again"}))

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].ID)
	assert.Equal(t, "A", list[1].Title)

	snap := <-m.Updates()
	assert.Equal(t, list, snap.Movies)
	assert.True(t, snap.Ready)

	require.NoError(t, m.Remove(2))
	assert.Equal(t, []domain.SavedMovie{{ID: 1, Title: "A"}}, m.List())
	assert.True(t, m.Ready(), "ready never reverts")
}

func TestModelHasAlwaysReadsStore(t *testing.T) {
	m, repo, _ := newTestModel(t)
	m.Activate()

	// Write behind the model's back; the snapshot is stale but Has is not
	_, err := repo.Store.Add(inception())
	require.NoError(t, err)

	assert.Empty(t, m.List())
	assert.True(t, m.Has(27205))
	assert.True(t, m.Has(27205))
	assert.Equal(t, 2, repo.contains)
}

func TestModelWriteFailureKeepsPersistedSnapshot(t *testing.T) {
	m, _, blobs := newTestModel(t)
	m.Activate()
	require.NoError(t, m.Add(domain.SavedMovie{ID: 1, Title: "Kept"}))

	blobs.writeErr = errors.New("storage unavailable")
	err := m.Add(domain.SavedMovie{ID: 2, Title: "Lost"})
	require.ErrorIs(t, err, domain.ErrWatchlistWrite)

	assert.Equal(t, []domain.SavedMovie{{ID: 1, Title: "Kept"}}, m.List())
	assert.ErrorIs(t, m.Err(), domain.ErrWatchlistWrite)
	assert.ErrorIs(t, m.Snapshot().Err, domain.ErrWatchlistWrite)

	blobs.writeErr = nil
	require.NoError(t, m.Add(domain.SavedMovie{ID: 2, Title: "Saved"}))
	assert.NoError(t, m.Err())
	assert.Len(t, m.List(), 2)
}

func TestModelToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Activate()

	saved, err := m.Toggle(inception())
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Len(t, m.List(), 1)

	saved, err = m.Toggle(inception())
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, m.List())
}

func TestModelListIsACopy(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Activate()
	require.NoError(t, m.Add(domain.SavedMovie{ID: 1, Title: "A"}))

	list := m.List()
	list[0].Title = "mutated"
	assert.Equal(t, "A", m.List()[0].Title)
}

func TestModelUpdatesKeepsOnlyLatest(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Activate()
	require.NoError(t, m.Add(domain.SavedMovie{ID: 1, Title: "A"}))
	require.NoError(t, m.Add(domain.SavedMovie{ID: 2, Title: "B"}))

	snap := <-m.Updates()
	assert.Len(t, snap.Movies, 2)
	select {
	case extra := <-m.Updates():
		t.Fatalf("unexpected buffered snapshot: %+v", extra)
	default:
	}
}
