package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TrendingLoadedMsg carries the home screen's trending list
type TrendingLoadedMsg struct {
	Movies []domain.MovieSummary
	Err    error
}

// PopularLoadedMsg carries the "Popular right now" row; failures arrive empty
type PopularLoadedMsg struct {
	Movies []domain.MovieSummary
}

// DetailsLoadedMsg carries a details response for movie ID
type DetailsLoadedMsg struct {
	ID     int
	Detail *domain.MovieDetail
	Err    error
}

// SavedStateMsg reports whether movie ID is on the watchlist
type SavedStateMsg struct {
	ID    int
	Saved bool
}

// WatchlistToggledMsg is the outcome of a save/remove action
type WatchlistToggledMsg struct {
	ID    int
	Title string
	Saved bool
	Err   error
}

// WatchlistUpdatedMsg carries a new watchlist snapshot
type WatchlistUpdatedMsg struct {
	Snapshot watchlist.Snapshot
}

// SearchStateMsg carries a new search coordinator state
type SearchStateMsg struct {
	State search.State
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	ID int
}
