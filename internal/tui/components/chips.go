package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Chips is a horizontal row of selectable labels
type Chips struct {
	labels []string
	cursor int
	active bool
}

// NewChips creates a chip row
func NewChips(labels ...string) Chips {
	return Chips{labels: labels}
}

// SetActive toggles the highlight of the selected chip
func (c *Chips) SetActive(active bool) {
	c.active = active
}

// Active reports whether the row has focus
func (c Chips) Active() bool {
	return c.active
}

// Next moves the selection right, wrapping around
func (c *Chips) Next() {
	if len(c.labels) > 0 {
		c.cursor = (c.cursor + 1) % len(c.labels)
	}
}

// Prev moves the selection left, wrapping around
func (c *Chips) Prev() {
	if len(c.labels) > 0 {
		c.cursor = (c.cursor - 1 + len(c.labels)) % len(c.labels)
	}
}

// Selected returns the selected label
func (c Chips) Selected() string {
	if len(c.labels) == 0 {
		return ""
	}
	return c.labels[c.cursor]
}

// View renders the row, wrapping to width
func (c Chips) View(width int) string {
	var lines []string
	var line []string
	lineWidth := 0
	for i, label := range c.labels {
		style := styles.ChipStyle
		if c.active && i == c.cursor {
			style = styles.ActiveChipStyle
		}
		chip := style.Render(label)
		w := lipgloss.Width(chip) + 1
		if width > 0 && lineWidth+w > width && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// EmptyState renders a bordered title + subtitle card
func EmptyState(title, subtitle string, width int) string {
	body := styles.TitleStyle.Render(title)
	if subtitle != "" {
		body += "\n" + styles.SubtitleStyle.Render(subtitle)
	}
	style := styles.CardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(body)
}
