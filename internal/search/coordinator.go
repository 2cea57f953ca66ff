package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultDebounce is how long input must pause before a search is issued
	DefaultDebounce = 600 * time.Millisecond

	// DefaultMinQueryLength is the shortest trimmed query that triggers a search
	DefaultMinQueryLength = 2

	failedMessage = "Search failed."
)

// Phase is the coordinator's position in its state machine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDebouncing
	PhaseInFlight
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDebouncing:
		return "debouncing"
	case PhaseInFlight:
		return "in-flight"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// State is the visible search state for one screen
type State struct {
	Query   string // Trimmed query the state belongs to
	Phase   Phase
	Results []domain.MovieSummary
	Loading bool
	Err     string // User-facing error, "" when none
	Seq     uint64 // Sequence of the current request
}

// Options tunes a Coordinator; zero values take the defaults
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	Logger         *slog.Logger
}

// Coordinator turns keystrokes into debounced searches and guarantees that
// only the most recently issued request can change the visible state.
//
// Each coordinator owns its own sequence counter. A response is applied only
// when its sequence equals the counter; older responses are dropped. Superseded
// requests also have their context cancelled.
type Coordinator struct {
	searcher domain.MovieSearcher
	debounce time.Duration
	minLen   int
	logger   *slog.Logger

	mu       sync.Mutex
	seq      uint64
	timer    *time.Timer
	timerGen uint64
	cancel   context.CancelFunc
	state    State
	closed   bool

	updates chan State
}

// NewCoordinator creates a coordinator in the Idle phase
func NewCoordinator(searcher domain.MovieSearcher, opts Options) *Coordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Coordinator{
		searcher: searcher,
		debounce: opts.Debounce,
		minLen:   opts.MinQueryLength,
		logger:   opts.Logger,
		updates:  make(chan State, 1),
	}
}

// SetQuery handles a change of the query field
func (c *Coordinator) SetQuery(query string) {
	q := strings.TrimSpace(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.stopTimerLocked()
	c.state.Err = ""
	c.state.Query = q

	if len([]rune(q)) < c.minLen {
		// Idle: nothing in flight may land after the field was cleared
		c.invalidateLocked()
		c.state.Phase = PhaseIdle
		c.state.Results = nil
		c.state.Loading = false
		c.state.Seq = c.seq
		c.publishLocked()
		return
	}

	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(q, gen) })
	c.state.Phase = PhaseDebouncing
	c.publishLocked()
}

// State returns a copy of the current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyStateLocked()
}

// Updates delivers the latest state after every change; unread states are replaced
func (c *Coordinator) Updates() <-chan State {
	return c.updates
}

// Close stops the debounce timer and cancels any in-flight request
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.invalidateLocked()
	c.closed = true
}

// fire runs on the timer goroutine
func (c *Coordinator) fire(query string, gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.timerGen {
		// A newer keystroke re-armed the timer after this one was already due
		c.mu.Unlock()
		return
	}
	c.timer = nil

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.state.Phase = PhaseInFlight
	c.state.Loading = true
	c.state.Seq = seq
	c.publishLocked()
	c.mu.Unlock()

	c.logger.Debug("search issued", "query", query, "seq", seq)
	results, err := c.searcher.SearchMovies(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if seq != c.seq {
		c.logger.Debug("stale search result dropped", "query", query, "seq", seq, "current", c.seq, "error", err)
		return
	}
	c.cancel = nil

	c.state.Phase = PhaseResolved
	if c.timer != nil {
		c.state.Phase = PhaseDebouncing
	}
	c.state.Loading = false
	if err != nil {
		c.logger.Warn("search failed", "query", query, "error", err)
		c.state.Err = errorMessage(err)
		c.state.Results = nil
	} else {
		c.logger.Debug("search complete", "query", query, "results", len(results))
		c.state.Err = ""
		c.state.Results = results
	}
	c.publishLocked()
}

func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Invalidate a fire that already passed Stop and is waiting on mu
	c.timerGen++
}

// invalidateLocked makes any in-flight response stale and cancels it
func (c *Coordinator) invalidateLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.seq++
	}
}

func (c *Coordinator) copyStateLocked() State {
	s := c.state
	if s.Results != nil {
		s.Results = append([]domain.MovieSummary(nil), s.Results...)
	}
	return s
}

func (c *Coordinator) publishLocked() {
	select {
	case <-c.updates:
	default:
	}
	c.updates <- c.copyStateLocked()
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return "Missing TMDB API key."
	case errors.Is(err, domain.ErrNetwork):
		return "Network request failed (cannot reach TMDB)."
	case errors.As(err, &apiErr):
		return apiErr.Error()
	default:
		if msg := err.Error(); msg != "" {
			return msg
		}
		return failedMessage
	}
}
