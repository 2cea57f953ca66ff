package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchBar is a single-line text input with a prompt
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a search bar with the given placeholder
func NewSearchBar(placeholder string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.NormalItemStyle
	ti.PlaceholderStyle = styles.DimStyle
	return SearchBar{input: ti}
}

// Focus focuses the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the raw text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the text and moves the cursor to the end
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-8, 10)
}

// Update passes messages to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input inside a bordered box
func (s SearchBar) View() string {
	style := styles.InputStyle
	if s.input.Focused() {
		style = style.BorderForeground(styles.Current.Primary)
	}
	if s.width > 0 {
		style = style.Width(s.width - 2)
	}
	return style.Render(s.input.View())
}
