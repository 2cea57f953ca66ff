package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// watchlistScreen lists saved movies with a fuzzy filter
type watchlistScreen struct {
	snap      watchlist.Snapshot
	popular   []domain.MovieSummary
	filter    components.SearchBar
	list      components.MovieList
	suggested components.MovieList
	width     int
}

func newWatchlistScreen() watchlistScreen {
	return watchlistScreen{
		filter:    components.NewSearchBar("Filter watchlist…"),
		list:      components.NewMovieList(components.DefaultListKeyMap(), "No matches."),
		suggested: components.NewMovieList(components.DefaultListKeyMap(), ""),
	}
}

func (w *watchlistScreen) setSize(width, height int) {
	w.width = width
	w.filter.SetWidth(width)
	w.list.SetSize(width, height-6)
	w.suggested.SetSize(width, height-10)
}

func (w *watchlistScreen) setSnapshot(snap watchlist.Snapshot) {
	w.snap = snap
	w.rebuild()
}

func (w *watchlistScreen) setPopular(movies []domain.MovieSummary) {
	w.popular = movies
	w.rebuild()
}

func (w *watchlistScreen) empty() bool {
	return w.snap.Ready && len(w.snap.Movies) == 0
}

func (w *watchlistScreen) rebuild() {
	matches := search.FilterSaved(w.filter.Value(), w.snap.Movies)
	rows := make([]components.Row, len(matches))
	for i, match := range matches {
		rows[i] = components.Row{Item: match.Movie, Matched: match.MatchedIndexes}
	}
	w.list.SetRows(rows)

	suggested := make([]components.Row, len(w.popular))
	for i, m := range w.popular {
		suggested[i] = components.Row{Item: m}
	}
	w.suggested.SetRows(suggested)
}

// selected returns the highlighted movie as a summary for the details view
func (w watchlistScreen) selected() (domain.MovieSummary, bool) {
	if w.empty() {
		item := w.suggested.Selected()
		if m, ok := item.(domain.MovieSummary); ok {
			return m, true
		}
		return domain.MovieSummary{}, false
	}
	saved, ok := w.selectedSaved()
	if !ok {
		return domain.MovieSummary{}, false
	}
	return domain.MovieSummary{ID: saved.ID, Title: saved.Title, PosterPath: saved.PosterPath, ReleaseDate: saved.ReleaseDate}, true
}

func (w watchlistScreen) selectedSaved() (domain.SavedMovie, bool) {
	if w.empty() {
		return domain.SavedMovie{}, false
	}
	m, ok := w.list.Selected().(domain.SavedMovie)
	return m, ok
}

func (w watchlistScreen) inputFocused() bool {
	return w.filter.Focused()
}

func (w watchlistScreen) update(msg tea.Msg) (watchlistScreen, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if w.filter.Focused() {
		if isKey {
			switch keyMsg.String() {
			case "esc":
				w.filter.SetValue("")
				w.filter.Blur()
				w.rebuild()
				return w, nil
			case "enter":
				w.filter.Blur()
				return w, nil
			case "up", "down", "ctrl+n", "ctrl+p":
				var cmd tea.Cmd
				w.list, cmd = w.list.Update(msg)
				return w, cmd
			}
		}
		var cmd tea.Cmd
		w.filter, cmd = w.filter.Update(msg)
		w.rebuild()
		return w, cmd
	}

	if isKey && key.Matches(keyMsg, Keys.Filter) && !w.empty() {
		return w, w.filter.Focus()
	}

	var cmd tea.Cmd
	if w.empty() {
		w.suggested, cmd = w.suggested.Update(msg)
	} else {
		w.list, cmd = w.list.Update(msg)
	}
	return w, cmd
}

func (w watchlistScreen) view() string {
	var b strings.Builder
	title := "Watchlist"
	if n := len(w.snap.Movies); n > 0 {
		title += fmt.Sprintf(" (%d)", n)
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	if !w.snap.Ready {
		b.WriteString(styles.SpinnerStyle.Render("Loading…"))
		return b.String()
	}

	if w.snap.Err != nil {
		b.WriteString(styles.ErrorStyle.Render("Could not save your watchlist. Showing what is stored."))
		b.WriteString("\n")
	}

	if w.empty() {
		b.WriteString(components.EmptyState(
			"Your Watchlist is empty",
			"Save movies you want to watch later. Open any movie and press “s” to save it.",
			w.width,
		))
		b.WriteString("\n")
		if w.suggested.Len() > 0 {
			b.WriteString(styles.SectionStyle.Render("Trending you might like"))
			b.WriteString("\n")
			b.WriteString(w.suggested.View())
		}
		return b.String()
	}

	b.WriteString(w.filter.View())
	b.WriteString("\n")
	b.WriteString(w.list.View())
	return b.String()
}
