package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is one colour theme
type Palette struct {
	Name        string
	Bg          lipgloss.Color
	Card        lipgloss.Color
	Chip        lipgloss.Color
	Border      lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Primary     lipgloss.Color
	PrimaryText lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
}

// Built-in palettes
var (
	Dark = Palette{
		Name:        "dark",
		Bg:          lipgloss.Color("#0b0b0b"),
		Card:        lipgloss.Color("#141414"),
		Chip:        lipgloss.Color("#1d1d1d"),
		Border:      lipgloss.Color("#2a2a2a"),
		Text:        lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#aaaaaa"),
		Primary:     lipgloss.Color("#ffffff"),
		PrimaryText: lipgloss.Color("#0b0b0b"),
		Error:       lipgloss.Color("#DC143C"),
		Success:     lipgloss.Color("#10B981"),
	}

	Light = Palette{
		Name:        "light",
		Bg:          lipgloss.Color("#ffffff"),
		Card:        lipgloss.Color("#f7f7f7"),
		Chip:        lipgloss.Color("#efefef"),
		Border:      lipgloss.Color("#e7e7e7"),
		Text:        lipgloss.Color("#111111"),
		Muted:       lipgloss.Color("#666666"),
		Primary:     lipgloss.Color("#111111"),
		PrimaryText: lipgloss.Color("#ffffff"),
		Error:       lipgloss.Color("#DC143C"),
		Success:     lipgloss.Color("#047857"),
	}

	Marquee = Palette{
		Name:        "marquee",
		Bg:          lipgloss.Color("#0F1724"),
		Card:        lipgloss.Color("#172133"),
		Chip:        lipgloss.Color("#1E2A40"),
		Border:      lipgloss.Color("#25324A"),
		Text:        lipgloss.Color("#E8ECF3"),
		Muted:       lipgloss.Color("#A7B0C0"),
		Primary:     lipgloss.Color("#F5C518"),
		PrimaryText: lipgloss.Color("#000000"),
		Error:       lipgloss.Color("#DC143C"),
		Success:     lipgloss.Color("#10B981"),
	}
)

// Current is the active palette
var Current = Marquee

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HeaderStyle    lipgloss.Style
	SectionStyle   lipgloss.Style
	RatingStyle    lipgloss.Style
	SpinnerStyle   lipgloss.Style
	MatchStyle     lipgloss.Style
	MatchSelStyle  lipgloss.Style
	HelpKeyStyle   lipgloss.Style
	HelpDescStyle  lipgloss.Style
	StatusBarStyle lipgloss.Style
)

// Tabs, chips and buttons
var (
	TabStyle        lipgloss.Style
	ActiveTabStyle  lipgloss.Style
	ChipStyle       lipgloss.Style
	ActiveChipStyle lipgloss.Style
	ButtonStyle     lipgloss.Style
	PrimaryButton   lipgloss.Style
)

// Panels and rows
var (
	CardStyle         lipgloss.Style
	ActiveBorder      lipgloss.Style
	InputStyle        lipgloss.Style
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
)

func init() {
	Apply(Marquee)
}

// ByName resolves a theme name; unknown names give Marquee
func ByName(name string) Palette {
	switch strings.ToLower(name) {
	case "dark":
		return Dark
	case "light":
		return Light
	default:
		return Marquee
	}
}

// Apply rebuilds every style from p
func Apply(p Palette) {
	Current = p

	TitleStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DimStyle = lipgloss.NewStyle().Foreground(p.Muted).Faint(true)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Primary)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	HeaderStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true).MarginBottom(1)
	SectionStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	RatingStyle = lipgloss.NewStyle().Foreground(p.Primary)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Primary)
	MatchStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	MatchSelStyle = lipgloss.NewStyle().Foreground(p.Primary).Background(p.Chip).Bold(true)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(p.Muted)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)

	TabStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(p.PrimaryText).
		Background(p.Primary).
		Bold(true).
		Padding(0, 2)
	ChipStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Chip).
		Padding(0, 1)
	ActiveChipStyle = ChipStyle.
		Foreground(p.PrimaryText).
		Background(p.Primary)
	ButtonStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	PrimaryButton = lipgloss.NewStyle().
		Foreground(p.PrimaryText).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	ActiveBorder = CardStyle.BorderForeground(p.Primary)
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Chip).
		Bold(true)
	NormalItemStyle = lipgloss.NewStyle().Foreground(p.Text)
}

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width == 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Pad pads s with spaces to width cells
func Pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Highlight renders s with the runes at indexes emphasised.
// indexes are byte offsets as reported by sahilm/fuzzy.
func Highlight(s string, indexes []int, base, match lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}

	var b strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			b.WriteString(match.Render(string(run)))
		} else {
			b.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for i, r := range s {
		if hit[i] != runMatched {
			flush()
			runMatched = hit[i]
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}

// RenderRow renders one list row, filling width with the selection background
func RenderRow(content string, selected bool, width int) string {
	style := NormalItemStyle
	marker := "  "
	if selected {
		style = SelectedItemStyle
		marker = AccentStyle.Render("▌ ")
	}
	return marker + style.Width(max(width-2, 0)).Render(content)
}

// SpinnerFrames are the frames of the plain-terminal spinner used before the TUI starts
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
