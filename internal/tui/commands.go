package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Command factories for async operations

const (
	loadTimeout  = 30 * time.Second
	popularCount = 10
)

// Opener launches URLs outside the terminal
type Opener interface {
	OpenTrailer(url string) error
	OpenPage(url string) error
}

// LoadTrendingCmd loads today's trending movies for the home screen
func LoadTrendingCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		movies, err := svc.Trending(ctx)
		return TrendingLoadedMsg{Movies: movies, Err: err}
	}
}

// LoadPopularCmd loads the top trending row; errors yield an empty row
func LoadPopularCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		movies, err := svc.TrendingTop(ctx, popularCount)
		if err != nil {
			return PopularLoadedMsg{}
		}
		return PopularLoadedMsg{Movies: movies}
	}
}

// LoadDetailsCmd loads one movie's details
func LoadDetailsCmd(svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		detail, err := svc.Details(ctx, id)
		return DetailsLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// CheckSavedCmd asks the watchlist whether a movie is saved
func CheckSavedCmd(wl *watchlist.Model, id int) tea.Cmd {
	return func() tea.Msg {
		return SavedStateMsg{ID: id, Saved: wl.Has(id)}
	}
}

// ActivateWatchlistCmd performs the first watchlist load
func ActivateWatchlistCmd(wl *watchlist.Model) tea.Cmd {
	return func() tea.Msg {
		wl.Activate()
		return nil
	}
}

// ToggleSavedCmd saves or removes a movie
func ToggleSavedCmd(wl *watchlist.Model, movie domain.SavedMovie) tea.Cmd {
	return func() tea.Msg {
		saved, err := wl.Toggle(movie)
		return WatchlistToggledMsg{ID: movie.ID, Title: movie.Title, Saved: saved, Err: err}
	}
}

// RemoveSavedCmd removes a movie from the watchlist
func RemoveSavedCmd(wl *watchlist.Model, movie domain.SavedMovie) tea.Cmd {
	return func() tea.Msg {
		err := wl.Remove(movie.ID)
		return WatchlistToggledMsg{ID: movie.ID, Title: movie.Title, Saved: err != nil, Err: err}
	}
}

// OpenTrailerCmd plays a trailer in the configured player
func OpenTrailerCmd(opener Opener, video domain.Video) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenTrailer(video.WatchURL()); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return StatusMsg{Message: "Playing: " + video.Name}
	}
}

// OpenPageCmd opens the TMDB page in the browser
func OpenPageCmd(opener Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenPage(url); err != nil {
			return ErrMsg{Err: err, Context: "opening page"}
		}
		return StatusMsg{Message: "Opened " + url}
	}
}

// CopyLinkCmd copies a URL to the system clipboard
func CopyLinkCmd(copyFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(url); err != nil {
			return ErrMsg{Err: err, Context: "copying link"}
		}
		return StatusMsg{Message: "Copied " + url}
	}
}

// ClearStatusCmd clears status message id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
