package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const featuredCount = 6

// homeScreen shows today's trending movies with a local title filter
type homeScreen struct {
	trending []domain.MovieSummary
	loading  bool
	err      string

	filter components.SearchBar
	list   components.MovieList
	width  int
}

func newHomeScreen() homeScreen {
	return homeScreen{
		loading: true,
		filter:  components.NewSearchBar("Filter trending…"),
		list:    components.NewMovieList(components.DefaultListKeyMap(), "No trending movies."),
	}
}

func (h *homeScreen) setSize(width, height int) {
	h.width = width
	h.filter.SetWidth(width)
	// title, subtitle, featured line, filter box and spacing
	h.list.SetSize(width, height-9)
}

func (h *homeScreen) setTrending(movies []domain.MovieSummary, err error) {
	h.loading = false
	if err != nil {
		h.err = catalog.Message(err, catalog.TrendingFailed)
		return
	}
	h.err = ""
	h.trending = movies
}

// rebuild refreshes the list from trending, the filter and saved IDs
func (h *homeScreen) rebuild(saved map[int]bool) {
	movies := search.RankTitles(h.filter.Value(), h.trending)
	rows := make([]components.Row, len(movies))
	for i, m := range movies {
		rows[i] = components.Row{Item: m, Saved: saved[m.ID]}
	}
	h.list.SetRows(rows)
}

func (h *homeScreen) selected() (domain.MovieSummary, bool) {
	item := h.list.Selected()
	if item == nil {
		return domain.MovieSummary{}, false
	}
	m, ok := item.(domain.MovieSummary)
	return m, ok
}

// inputFocused reports whether keys go to the filter
func (h homeScreen) inputFocused() bool {
	return h.filter.Focused()
}

func (h homeScreen) update(msg tea.Msg, saved map[int]bool) (homeScreen, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if h.filter.Focused() {
		if isKey {
			switch keyMsg.String() {
			case "esc":
				h.filter.SetValue("")
				h.filter.Blur()
				h.rebuild(saved)
				return h, nil
			case "enter":
				h.filter.Blur()
				return h, nil
			case "up", "down", "ctrl+n", "ctrl+p":
				var cmd tea.Cmd
				h.list, cmd = h.list.Update(msg)
				return h, cmd
			}
		}
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		h.rebuild(saved)
		return h, cmd
	}

	if isKey && key.Matches(keyMsg, Keys.Filter) {
		return h, h.filter.Focus()
	}
	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

func (h homeScreen) view() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Trending Today"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Open a movie to see details, trailer, and cast."))
	b.WriteString("\n")
	if h.err != "" {
		b.WriteString(styles.ErrorStyle.Render(h.err))
		b.WriteString("\n")
	}

	if h.loading {
		b.WriteString("\n")
		b.WriteString(styles.SpinnerStyle.Render("Loading trending movies…"))
		return b.String()
	}

	if featured := h.featured(); featured != "" {
		b.WriteString(featured)
		b.WriteString("\n")
	}
	b.WriteString(h.filter.View())
	b.WriteString("\n")
	b.WriteString(h.list.View())
	return b.String()
}

// featured renders the first trending titles as a single line
func (h homeScreen) featured() string {
	n := min(featuredCount, len(h.trending))
	if n == 0 {
		return ""
	}
	titles := make([]string, n)
	for i := 0; i < n; i++ {
		titles[i] = h.trending[i].Title
	}
	line := styles.Truncate(strings.Join(titles, " · "), max(h.width-10, 10))
	return styles.SectionStyle.Render("Featured ") + styles.AccentStyle.Render(line)
}
