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
)

// Suggestions offered while the query is too short to search
var Suggestions = []string{"Batman", "Marvel", "Harry Potter", "Comedy", "Action"}

// searchScreen drives a search.Coordinator from a text input
type searchScreen struct {
	coord    *search.Coordinator
	minLen   int
	state    search.State
	popular  []domain.MovieSummary
	bar      components.SearchBar
	chips    components.Chips
	results  components.MovieList
	trending components.MovieList
	width    int
}

func newSearchScreen(coord *search.Coordinator, minLen int) searchScreen {
	if minLen <= 0 {
		minLen = search.DefaultMinQueryLength
	}
	return searchScreen{
		coord:    coord,
		minLen:   minLen,
		bar:      components.NewSearchBar("Search movies…"),
		chips:    components.NewChips(Suggestions...),
		results:  components.NewMovieList(components.InputListKeyMap(), "No results."),
		trending: components.NewMovieList(components.DefaultListKeyMap(), ""),
	}
}

func (s *searchScreen) setSize(width, height int) {
	s.width = width
	s.bar.SetWidth(width)
	s.results.SetSize(width, height-7)
	s.trending.SetSize(width, height-12)
}

// showHero reports whether the query is too short to search
func (s searchScreen) showHero() bool {
	return len([]rune(strings.TrimSpace(s.bar.Value()))) < s.minLen
}

func (s *searchScreen) setState(state search.State, saved map[int]bool) {
	s.state = state
	s.rebuild(saved)
}

func (s *searchScreen) setPopular(movies []domain.MovieSummary, saved map[int]bool) {
	s.popular = movies
	s.rebuild(saved)
}

func (s *searchScreen) rebuild(saved map[int]bool) {
	rows := make([]components.Row, len(s.state.Results))
	for i, m := range s.state.Results {
		rows[i] = components.Row{Item: m, Saved: saved[m.ID]}
	}
	s.results.SetRows(rows)

	popular := make([]components.Row, len(s.popular))
	for i, m := range s.popular {
		popular[i] = components.Row{Item: m, Saved: saved[m.ID]}
	}
	s.trending.SetRows(popular)
}

func (s searchScreen) selected() (domain.MovieSummary, bool) {
	list := s.results
	if s.showHero() {
		list = s.trending
	}
	item := list.Selected()
	if item == nil {
		return domain.MovieSummary{}, false
	}
	m, ok := item.(domain.MovieSummary)
	return m, ok
}

func (s searchScreen) inputFocused() bool {
	return s.bar.Focused()
}

// focus gives the input focus, e.g. when the screen is entered
func (s *searchScreen) focus() tea.Cmd {
	s.chips.SetActive(false)
	return s.bar.Focus()
}

// setQuery changes the text field and informs the coordinator
func (s *searchScreen) setQuery(q string) {
	s.bar.SetValue(q)
	s.coord.SetQuery(q)
}

// clear empties the field
func (s *searchScreen) clear() {
	s.setQuery("")
}

func (s searchScreen) update(msg tea.Msg) (searchScreen, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if s.bar.Focused() {
		if isKey {
			switch keyMsg.String() {
			case "esc":
				s.bar.Blur()
				return s, nil
			case "up", "down", "ctrl+n", "ctrl+p", "pgup", "pgdown":
				var cmd tea.Cmd
				if s.showHero() {
					s.trending, cmd = s.trending.Update(msg)
				} else {
					s.results, cmd = s.results.Update(msg)
				}
				return s, cmd
			case "ctrl+l":
				s.clear()
				return s, nil
			}
		}
		before := s.bar.Value()
		var cmd tea.Cmd
		s.bar, cmd = s.bar.Update(msg)
		if s.bar.Value() != before {
			s.coord.SetQuery(s.bar.Value())
		}
		return s, cmd
	}

	if !isKey {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, Keys.Filter):
		return s, s.focus()
	case s.showHero() && key.Matches(keyMsg, Keys.Right):
		if s.chips.Active() {
			s.chips.Next()
		}
		s.chips.SetActive(true)
		return s, nil
	case s.showHero() && key.Matches(keyMsg, Keys.Left):
		if s.chips.Active() {
			s.chips.Prev()
		}
		s.chips.SetActive(true)
		return s, nil
	case s.chips.Active() && key.Matches(keyMsg, Keys.Enter):
		s.setQuery(s.chips.Selected())
		return s, s.focus()
	}

	s.chips.SetActive(false)
	var cmd tea.Cmd
	if s.showHero() {
		s.trending, cmd = s.trending.Update(msg)
	} else {
		s.results, cmd = s.results.Update(msg)
	}
	return s, cmd
}

// consumesEnter reports whether Enter belongs to the screen rather than
// opening the selected movie
func (s searchScreen) consumesEnter() bool {
	return !s.bar.Focused() && s.chips.Active()
}

func (s searchScreen) view() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Find movies fast: trailers, cast, and more."))
	b.WriteString("\n")
	b.WriteString(s.bar.View())
	b.WriteString("\n")

	if s.state.Err != "" {
		b.WriteString(styles.ErrorStyle.Render(s.state.Err))
		b.WriteString("\n")
	}

	if s.showHero() {
		hero := styles.TitleStyle.Render("Try “Batman”, “Marvel”, “Comedy”") + "\n" +
			styles.SubtitleStyle.Render(fmt.Sprintf("Type at least %d letters to search.", s.minLen)) + "\n\n" +
			s.chips.View(s.width-4)
		b.WriteString(styles.CardStyle.Width(max(s.width-2, 10)).Render(hero))
		b.WriteString("\n")
		if s.trending.Len() > 0 {
			b.WriteString(styles.SectionStyle.Render("Popular right now"))
			b.WriteString("\n")
			b.WriteString(s.trending.View())
		}
		return b.String()
	}

	if s.state.Loading {
		b.WriteString(styles.SpinnerStyle.Render("Searching…"))
		return b.String()
	}
	if s.state.Phase == search.PhaseDebouncing && s.results.Len() == 0 {
		return b.String()
	}
	if s.state.Err == "" {
		b.WriteString(s.results.View())
	}
	return b.String()
}
