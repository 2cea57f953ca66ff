package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Row is one entry of a MovieList
type Row struct {
	Item    domain.ListItem
	Matched []int // byte offsets in the title to highlight
	Saved   bool  // show the watchlist marker
}

// MovieList is a scrollable, selectable list of movies
type MovieList struct {
	rows   []Row
	cursor int
	offset int
	width  int
	height int
	keys   ListKeyMap
	empty  string
}

// NewMovieList creates an empty list that shows emptyText when it has no rows
func NewMovieList(keys ListKeyMap, emptyText string) MovieList {
	return MovieList{keys: keys, empty: emptyText}
}

// SetRows replaces the rows and keeps the cursor in range
func (l *MovieList) SetRows(rows []Row) {
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = len(rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// SetEmptyText changes the placeholder shown when there are no rows
func (l *MovieList) SetEmptyText(text string) {
	l.empty = text
}

// SetSize updates the component dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Len returns the number of rows
func (l MovieList) Len() int {
	return len(l.rows)
}

// Cursor returns the selected index
func (l MovieList) Cursor() int {
	return l.cursor
}

// Selected returns the selected item, nil when empty
func (l MovieList) Selected() domain.ListItem {
	if len(l.rows) == 0 {
		return nil
	}
	return l.rows[l.cursor].Item
}

// Update handles navigation keys
func (l MovieList) Update(msg tea.Msg) (MovieList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.rows) == 0 {
		return l, nil
	}
	last := len(l.rows) - 1
	half := max(l.visibleRows()/2, 1)

	switch {
	case key.Matches(keyMsg, l.keys.Up):
		l.cursor = max(l.cursor-1, 0)
	case key.Matches(keyMsg, l.keys.Down):
		l.cursor = min(l.cursor+1, last)
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = last
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.cursor = max(l.cursor-half, 0)
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.cursor = min(l.cursor+half, last)
	}
	l.ensureVisible()
	return l, nil
}

// visibleRows is the number of rows that fit, each row taking two lines
func (l MovieList) visibleRows() int {
	if l.height <= 0 {
		return len(l.rows)
	}
	return max(l.height/2, 1)
}

func (l *MovieList) ensureVisible() {
	visible := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows
func (l MovieList) View() string {
	if len(l.rows) == 0 {
		return styles.DimStyle.Render(l.empty)
	}

	width := l.width
	if width <= 0 {
		width = 60
	}
	end := min(l.offset+l.visibleRows(), len(l.rows))

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		if i > l.offset {
			b.WriteString("\n")
		}
		b.WriteString(l.renderRow(l.rows[i], i == l.cursor, width))
	}
	if end < len(l.rows) {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(l.rows)-end)))
	}
	return b.String()
}

func (l MovieList) renderRow(row Row, selected bool, width int) string {
	base, match := styles.NormalItemStyle, styles.MatchStyle
	if selected {
		base, match = styles.SelectedItemStyle, styles.MatchSelStyle
	}

	title := row.Item.GetTitle()
	if title == "" {
		title = "Untitled"
	}
	marker := ""
	if row.Saved {
		marker = styles.AccentStyle.Render(" ★")
	}
	titleWidth := width - 4
	if len([]rune(title)) > titleWidth {
		// Highlight offsets no longer line up after truncation
		title = styles.Truncate(title, titleWidth)
		row.Matched = nil
	}

	line := styles.RenderRow(styles.Highlight(title, row.Matched, base, match)+marker, selected, width)
	desc := "  " + styles.SubtitleStyle.Render(styles.Truncate(row.Item.GetDescription(), width-2))
	return line + "\n" + desc
}
