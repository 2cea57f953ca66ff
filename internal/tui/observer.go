package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Channel bridges: each command blocks for the next published state and is
// re-issued by Update after every delivery.

// WaitForSearchCmd waits for the next search coordinator state
func WaitForSearchCmd(updates <-chan search.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return SearchStateMsg{State: state}
	}
}

// WaitForWatchlistCmd waits for the next watchlist snapshot
func WaitForWatchlistCmd(updates <-chan watchlist.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return WatchlistUpdatedMsg{Snapshot: snap}
	}
}
