package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.Width == 0 {
		return m.spinner.View() + " Starting…"
	}

	var body string
	if m.showDetails {
		body = m.renderDetailsHeader() + "\n" + m.details.View()
	} else {
		switch m.screen {
		case ScreenHome:
			body = m.home.view()
		case ScreenSearch:
			body = m.search.view()
		case ScreenWatchlist:
			body = m.watch.view()
		}
	}

	bodyHeight := max(m.Height-ChromeHeight, 1)
	if m.showHelp {
		bodyHeight = max(bodyHeight-4, 1)
	}
	body = lipgloss.NewStyle().
		Width(m.Width - 2).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(0, 1).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderFooter(),
	)
}

// renderTabs renders the tab bar with the app name
func (m Model) renderTabs() string {
	tabs := []string{styles.AccentStyle.Bold(true).Render("🎬 Marquee")}
	for s := ScreenHome; s < screenCount; s++ {
		style := styles.TabStyle
		if s == m.screen && !m.showDetails {
			style = styles.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(s.String()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return lipgloss.NewStyle().
		Width(m.Width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Current.Border).
		Render(bar)
}

func (m Model) renderDetailsHeader() string {
	return styles.DimStyle.Render("← esc  " + m.screen.String() + " / Details")
}

// renderFooter renders the status line and key help
func (m Model) renderFooter() string {
	var status string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		status = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		status = styles.SuccessStyle.Render(m.StatusMsg)
	case m.busy():
		status = m.spinner.View() + styles.DimStyle.Render(" working")
	}

	m.help.Width = m.Width
	helpView := m.help.View(Keys)
	if m.showDetails && !m.showHelp {
		helpView = detailsHelp()
	}

	lines := []string{styles.StatusBarStyle.Render(status), helpView}
	return strings.Join(lines, "\n")
}

func (m Model) busy() bool {
	return m.home.loading || m.search.state.Loading
}

func detailsHelp() string {
	parts := []string{
		styles.HelpKeyStyle.Render("t") + " " + styles.HelpDescStyle.Render("trailer"),
		styles.HelpKeyStyle.Render("s") + " " + styles.HelpDescStyle.Render("save/remove"),
		styles.HelpKeyStyle.Render("c") + " " + styles.HelpDescStyle.Render("copy link"),
		styles.HelpKeyStyle.Render("o") + " " + styles.HelpDescStyle.Render("open page"),
		styles.HelpKeyStyle.Render("esc") + " " + styles.HelpDescStyle.Render("back"),
	}
	return strings.Join(parts, styles.DimStyle.Render(" • "))
}
