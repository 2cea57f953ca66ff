package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Screen is one of the top-level tabs
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenWatchlist
	screenCount
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenSearch:
		return "Search"
	case ScreenWatchlist:
		return "Watchlist"
	default:
		return "?"
	}
}

const (
	statusTimeout = 3 * time.Second
	errorTimeout  = 5 * time.Second

	// Vertical chrome: tab bar + status/help footer
	ChromeHeight = 4
)

// Services are the collaborators the TUI drives
type Services struct {
	Catalog        *catalog.Service
	Search         *search.Coordinator
	Watchlist      *watchlist.Model
	Opener         Opener
	CopyToClip     func(string) error
	PosterURL      components.ImageResolver
	MinQueryLength int
	Logger         *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	svc    Services
	logger *slog.Logger

	screen Screen
	home   homeScreen
	search searchScreen
	watch  watchlistScreen

	// Details overlay
	showDetails bool
	detailsID   int
	detailsFrom domain.MovieSummary
	details     components.Details

	// Snapshot of saved IDs for list markers
	saved map[int]bool

	spinner  spinner.Model
	help     help.Model
	showHelp bool

	Width  int
	Height int

	StatusMsg   string
	StatusIsErr bool
	statusID    int
}

// NewModel creates a new application model
func NewModel(svc Services) Model {
	if svc.Logger == nil {
		svc.Logger = slog.Default()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		svc:     svc,
		logger:  svc.Logger,
		screen:  ScreenHome,
		home:    newHomeScreen(),
		search:  newSearchScreen(svc.Search, svc.MinQueryLength),
		watch:   newWatchlistScreen(),
		details: components.NewDetails(svc.PosterURL),
		saved:   map[int]bool{},
		spinner: sp,
		help:    help.New(),
	}
}

// Init starts the initial loads and the update bridges. The watchlist is
// activated here so saved markers show on Home and Search from the start.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTrendingCmd(m.svc.Catalog),
		LoadPopularCmd(m.svc.Catalog),
		ActivateWatchlistCmd(m.svc.Watchlist),
		WaitForSearchCmd(m.svc.Search.Updates()),
		WaitForWatchlistCmd(m.svc.Watchlist.Updates()),
		m.spinner.Tick,
	)
}

// Screen returns the active tab
func (m Model) Screen() Screen {
	return m.screen
}

// DetailsOpen reports whether the details overlay is showing
func (m Model) DetailsOpen() bool {
	return m.showDetails
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TrendingLoadedMsg:
		m.home.setTrending(msg.Movies, msg.Err)
		m.home.rebuild(m.saved)
		return m, nil

	case PopularLoadedMsg:
		m.search.setPopular(msg.Movies, m.saved)
		m.watch.setPopular(msg.Movies)
		return m, nil

	case SearchStateMsg:
		m.search.setState(msg.State, m.saved)
		return m, WaitForSearchCmd(m.svc.Search.Updates())

	case WatchlistUpdatedMsg:
		m.watch.setSnapshot(msg.Snapshot)
		m.saved = savedIDs(msg.Snapshot.Movies)
		m.home.rebuild(m.saved)
		m.search.rebuild(m.saved)
		return m, WaitForWatchlistCmd(m.svc.Watchlist.Updates())

	case DetailsLoadedMsg:
		// Only the movie currently open may fill the view
		if !m.showDetails || msg.ID != m.detailsID {
			return m, nil
		}
		if msg.Err != nil {
			m.details.SetError(catalog.Message(msg.Err, catalog.DetailsFailed))
			return m, nil
		}
		m.details.SetDetail(msg.Detail)
		return m, nil

	case SavedStateMsg:
		if msg.ID == m.detailsID {
			m.details.SetSaved(msg.Saved)
		}
		return m, nil

	case WatchlistToggledMsg:
		if msg.ID == m.detailsID {
			m.details.SetSaved(msg.Saved)
		}
		if msg.Err != nil {
			return m.setStatus("Could not update watchlist: "+msg.Title, true)
		}
		if msg.Saved {
			return m.setStatus("Saved: "+msg.Title, false)
		}
		return m.setStatus("Removed: "+msg.Title, false)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	if m.showDetails {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	return m.updateScreen(msg)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := statusTimeout
	if isErr {
		delay = errorTimeout
	}
	return m, ClearStatusCmd(m.statusID, delay)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showDetails {
		return m.handleDetailsKey(msg)
	}

	// Text inputs own every printable key
	if m.inputFocused() {
		if key.Matches(msg, Keys.Enter) && !m.searchEnterOwned() {
			if m.screen == ScreenSearch {
				if movie, ok := m.search.selected(); ok {
					return m.openDetails(movie)
				}
			}
		}
		return m.updateScreen(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.updateLayout()
		return m, nil
	case key.Matches(msg, Keys.Home):
		return m.switchScreen(ScreenHome)
	case key.Matches(msg, Keys.Search):
		return m.switchScreen(ScreenSearch)
	case key.Matches(msg, Keys.Watchlist):
		return m.switchScreen(ScreenWatchlist)
	case key.Matches(msg, Keys.NextTab):
		return m.switchScreen((m.screen + 1) % screenCount)
	case key.Matches(msg, Keys.PrevTab):
		return m.switchScreen((m.screen + screenCount - 1) % screenCount)
	case key.Matches(msg, Keys.Refresh):
		return m.refresh()
	case key.Matches(msg, Keys.Enter) && !m.searchEnterOwned():
		if movie, ok := m.selected(); ok {
			return m.openDetails(movie)
		}
		return m, nil
	case key.Matches(msg, Keys.Delete) && m.screen == ScreenWatchlist:
		if saved, ok := m.watch.selectedSaved(); ok {
			return m, RemoveSavedCmd(m.svc.Watchlist, saved)
		}
		return m, nil
	}

	return m.updateScreen(msg)
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := m.details.Detail()

	switch {
	case key.Matches(msg, Keys.Back):
		m.showDetails = false
		m.detailsID = 0
		return m, nil
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Save):
		saved := m.detailsFrom.Saved()
		if detail != nil {
			saved = detail.Saved()
		}
		return m, ToggleSavedCmd(m.svc.Watchlist, saved)
	case key.Matches(msg, Keys.Trailer) && detail != nil:
		video, ok := detail.Trailer()
		if !ok {
			return m.setStatus("No trailer available", false)
		}
		return m, OpenTrailerCmd(m.svc.Opener, video)
	case key.Matches(msg, Keys.CopyLink):
		return m, CopyLinkCmd(m.svc.CopyToClip, m.detailsFrom.PageURL())
	case key.Matches(msg, Keys.OpenPage):
		return m, OpenPageCmd(m.svc.Opener, m.detailsFrom.PageURL())
	}

	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m Model) openDetails(movie domain.MovieSummary) (tea.Model, tea.Cmd) {
	m.showDetails = true
	m.detailsID = movie.ID
	m.detailsFrom = movie
	m.details.SetSaved(m.saved[movie.ID])
	m.details.SetLoading()
	return m, tea.Batch(
		LoadDetailsCmd(m.svc.Catalog, movie.ID),
		CheckSavedCmd(m.svc.Watchlist, movie.ID),
	)
}

func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	switch s {
	case ScreenSearch:
		return m, m.search.focus()
	case ScreenWatchlist:
		// Already active after Init; repeat calls are no-ops
		return m, ActivateWatchlistCmd(m.svc.Watchlist)
	}
	return m, nil
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenHome:
		m.home.loading = true
		return m, LoadTrendingCmd(m.svc.Catalog)
	case ScreenWatchlist:
		wl := m.svc.Watchlist
		return m, func() tea.Msg {
			wl.Refresh()
			return nil
		}
	}
	return m, nil
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenHome:
		m.home, cmd = m.home.update(msg, m.saved)
	case ScreenSearch:
		m.search, cmd = m.search.update(msg)
	case ScreenWatchlist:
		m.watch, cmd = m.watch.update(msg)
	}
	return m, cmd
}

func (m Model) inputFocused() bool {
	switch m.screen {
	case ScreenHome:
		return m.home.inputFocused()
	case ScreenSearch:
		return m.search.inputFocused()
	case ScreenWatchlist:
		return m.watch.inputFocused()
	}
	return false
}

func (m Model) searchEnterOwned() bool {
	return m.screen == ScreenSearch && m.search.consumesEnter()
}

func (m Model) selected() (domain.MovieSummary, bool) {
	switch m.screen {
	case ScreenHome:
		return m.home.selected()
	case ScreenSearch:
		return m.search.selected()
	case ScreenWatchlist:
		return m.watch.selected()
	}
	return domain.MovieSummary{}, false
}

func (m *Model) updateLayout() {
	height := m.Height - ChromeHeight
	if m.showHelp {
		height -= 4
	}
	width := m.Width - 2
	m.home.setSize(width, height)
	m.search.setSize(width, height)
	m.watch.setSize(width, height)
	m.details.SetSize(width, height)
}

func savedIDs(movies []domain.SavedMovie) map[int]bool {
	ids := make(map[int]bool, len(movies))
	for _, mv := range movies {
		ids[mv.ID] = true
	}
	return ids
}
