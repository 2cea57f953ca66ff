package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

// call is one SearchMovies invocation held until the test releases it
type call struct {
	query   string
	ctx     context.Context
	release chan result
}

type result struct {
	movies []domain.MovieSummary
	err    error
}

// gatedSearcher blocks each call until the test answers it
type gatedSearcher struct {
	mu    sync.Mutex
	calls []*call
	ch    chan *call
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{ch: make(chan *call, 16)}
}

func (g *gatedSearcher) SearchMovies(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	c := &call{query: query, ctx: ctx, release: make(chan result, 1)}
	g.mu.Lock()
	g.calls = append(g.calls, c)
	g.mu.Unlock()
	g.ch <- c

	// Deliberately ignores ctx so stale results really arrive late
	r := <-c.release
	return r.movies, r.err
}

func (g *gatedSearcher) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *gatedSearcher) next(t *testing.T) *call {
	t.Helper()
	select {
	case c := <-g.ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a search call")
		return nil
	}
}

func movies(titles ...string) []domain.MovieSummary {
	out := make([]domain.MovieSummary, len(titles))
	for i, title := range titles {
		out[i] = domain.MovieSummary{ID: i + 1, Title: title}
	}
	return out
}

func newTestCoordinator(s domain.MovieSearcher) *Coordinator {
	return NewCoordinator(s, Options{
		Debounce: testDebounce,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func waitFor(t *testing.T, c *Coordinator, cond func(State) bool) State {
	t.Helper()
	var last State
	require.Eventually(t, func() bool {
		last = c.State()
		return cond(last)
	}, 2*time.Second, 2*time.Millisecond)
	return last
}

func TestShortQueriesNeverSearch(t *testing.T) {
	for _, q := range []string{"", "  ", "a", " a ", "\t"} {
		s := newGatedSearcher()
		c := newTestCoordinator(s)

		c.SetQuery(q)
		st := c.State()
		assert.Equal(t, PhaseIdle, st.Phase, "query %q", q)
		assert.Empty(t, st.Results)
		assert.False(t, st.Loading)

		time.Sleep(3 * testDebounce)
		assert.Zero(t, s.count(), "query %q must not hit the network", q)
		c.Close()
	}
}

func TestDebouncedQueryIssuesExactlyOneCall(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	for _, q := range []string{"ba", "bat", "batm", "batma", "batman"} {
		c.SetQuery(q)
	}
	assert.Equal(t, PhaseDebouncing, c.State().Phase)

	call := s.next(t)
	assert.Equal(t, "batman", call.query)
	assert.True(t, c.State().Loading)

	call.release <- result{movies: movies("Batman Begins", "The Batman")}
	st := waitFor(t, c, func(st State) bool { return st.Phase == PhaseResolved })
	assert.Equal(t, movies("Batman Begins", "The Batman"), st.Results)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)

	time.Sleep(3 * testDebounce)
	assert.Equal(t, 1, s.count())
}

func TestQueryIsTrimmedBeforeSearch(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("  batman  ")
	call := s.next(t)
	assert.Equal(t, "batman", call.query)
	call.release <- result{}
}

func TestLastRequestWinsWhenResponsesArriveOutOfOrder(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("batman")
	r1 := s.next(t)
	seq1 := c.State().Seq

	c.SetQuery("superman")
	r2 := s.next(t)
	assert.Greater(t, c.State().Seq, seq1)

	// The older request is cancelled as well as ignored
	select {
	case <-r1.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("superseded request context was not cancelled")
	}

	r2.release <- result{movies: movies("Superman")}
	waitFor(t, c, func(st State) bool { return st.Phase == PhaseResolved })

	r1.release <- result{movies: movies("Batman")}
	time.Sleep(3 * testDebounce)

	st := c.State()
	assert.Equal(t, movies("Superman"), st.Results)
	assert.False(t, st.Loading)
}

func TestStaleFailureIsDropped(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("batman")
	r1 := s.next(t)
	c.SetQuery("superman")
	r2 := s.next(t)

	r2.release <- result{movies: movies("Superman")}
	waitFor(t, c, func(st State) bool { return st.Phase == PhaseResolved })

	r1.release <- result{err: &domain.NetworkError{Err: errors.New("boom")}}
	time.Sleep(3 * testDebounce)

	st := c.State()
	assert.Empty(t, st.Err)
	assert.Equal(t, movies("Superman"), st.Results)
}

func TestCurrentFailureShowsErrorAndClearsResults(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("batman")
	s.next(t).release <- result{movies: movies("Batman")}
	waitFor(t, c, func(st State) bool { return len(st.Results) == 1 })

	c.SetQuery("batmann")
	s.next(t).release <- result{err: &domain.APIError{StatusCode: 500, Status: "Internal Server Error"}}

	st := waitFor(t, c, func(st State) bool { return st.Err != "" })
	assert.Equal(t, "TMDB 500 Internal Server Error", st.Err)
	assert.Empty(t, st.Results)
	assert.False(t, st.Loading)

	// A new keystroke clears the error immediately
	c.SetQuery("batman")
	assert.Empty(t, c.State().Err)
}

func TestClearingDropsInFlightResult(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("batman")
	call := s.next(t)

	c.SetQuery("")
	st := c.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Results)

	call.release <- result{movies: movies("Batman")}
	time.Sleep(3 * testDebounce)
	assert.Empty(t, c.State().Results)
	assert.Equal(t, PhaseIdle, c.State().Phase)
}

func TestClearingCancelsPendingTimer(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("batman")
	c.SetQuery("b")
	time.Sleep(4 * testDebounce)
	assert.Zero(t, s.count())
}

func TestCloseStopsEverything(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)

	c.SetQuery("batman")
	c.Close()
	time.Sleep(4 * testDebounce)
	assert.Zero(t, s.count())

	c.SetQuery("superman")
	time.Sleep(4 * testDebounce)
	assert.Zero(t, s.count())
}

func TestCoordinatorsHaveIndependentCounters(t *testing.T) {
	s1, s2 := newGatedSearcher(), newGatedSearcher()
	a, b := newTestCoordinator(s1), newTestCoordinator(s2)
	defer a.Close()
	defer b.Close()

	a.SetQuery("alien")
	s1.next(t).release <- result{}
	waitFor(t, a, func(st State) bool { return st.Phase == PhaseResolved })

	b.SetQuery("aliens")
	s2.next(t).release <- result{}
	waitFor(t, b, func(st State) bool { return st.Phase == PhaseResolved })

	assert.Equal(t, uint64(1), a.State().Seq)
	assert.Equal(t, uint64(1), b.State().Seq)
}

func TestUpdatesDeliversLatestState(t *testing.T) {
	s := newGatedSearcher()
	c := newTestCoordinator(s)
	defer c.Close()

	c.SetQuery("x")
	c.SetQuery("batman")

	st := <-c.Updates()
	assert.Equal(t, PhaseDebouncing, st.Phase)
	assert.Equal(t, "batman", st.Query)

	s.next(t).release <- result{movies: movies("Batman")}
	require.Eventually(t, func() bool {
		select {
		case st = <-c.Updates():
			return st.Phase == PhaseResolved
		default:
			return false
		}
	}, 2*time.Second, 2*time.Millisecond)
	assert.Equal(t, movies("Batman"), st.Results)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingAPIKey, "Missing TMDB API key."},
		{&domain.NetworkError{Err: errors.New("dial tcp")}, "Network request failed (cannot reach TMDB)."},
		{&domain.APIError{StatusCode: 401, Status: "Unauthorized", Body: "bad key"}, "TMDB 401 Unauthorized: bad key"},
		{errors.New("weird"), "weird"},
		{errors.New(""), failedMessage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorMessage(tt.err))
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "debouncing", PhaseDebouncing.String())
	assert.Equal(t, "in-flight", PhaseInFlight.String())
	assert.Equal(t, "resolved", PhaseResolved.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
