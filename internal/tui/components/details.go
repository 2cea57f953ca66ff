package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Limits for the details body
const (
	MaxGenres = 4
	MaxCast   = 15
)

// ImageResolver turns a relative image path into a URL ("" when missing)
type ImageResolver func(path string) string

// Details displays one movie: header, actions, overview, genres and cast
type Details struct {
	detail  *domain.MovieDetail
	saved   bool
	loading bool
	err     string
	poster  ImageResolver

	viewport viewport.Model
	width    int
	height   int
}

// NewDetails creates an empty details view
func NewDetails(poster ImageResolver) Details {
	return Details{poster: poster, viewport: viewport.New(0, 0)}
}

// SetLoading clears the view and shows a loading line
func (d *Details) SetLoading() {
	d.detail = nil
	d.err = ""
	d.loading = true
	d.refresh()
}

// SetDetail sets the movie to display
func (d *Details) SetDetail(detail *domain.MovieDetail) {
	d.detail = detail
	d.loading = false
	d.err = ""
	d.viewport.GotoTop()
	d.refresh()
}

// SetError shows a load failure
func (d *Details) SetError(msg string) {
	d.detail = nil
	d.loading = false
	d.err = msg
	d.refresh()
}

// SetSaved updates the watchlist button
func (d *Details) SetSaved(saved bool) {
	d.saved = saved
	d.refresh()
}

// Detail returns the displayed movie, nil while loading or failed
func (d Details) Detail() *domain.MovieDetail {
	return d.detail
}

// SetSize updates the component dimensions
func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	d.refresh()
}

// Update scrolls the body
func (d Details) Update(msg tea.Msg) (Details, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the component
func (d Details) View() string {
	return d.viewport.View()
}

func (d *Details) refresh() {
	d.viewport.SetContent(d.render())
}

func (d Details) render() string {
	switch {
	case d.loading:
		return styles.SpinnerStyle.Render("Loading…")
	case d.err != "":
		return styles.ErrorStyle.Render(d.err)
	case d.detail == nil:
		return styles.DimStyle.Render("Movie not found.")
	}

	m := d.detail
	width := max(d.width, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.Title))
	b.WriteString("\n")

	var meta []string
	if year := m.Year(); year > 0 {
		meta = append(meta, fmt.Sprint(year))
	}
	if rating := m.Rating(); rating != "" {
		meta = append(meta, styles.RatingStyle.Render("★ "+rating))
	}
	meta = append(meta, m.FormattedRuntime())
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " • ")))
	b.WriteString("\n")

	if m.Tagline != "" {
		b.WriteString(wrap.Render(styles.DimStyle.Italic(true).Render(m.Tagline)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(wrap.Render(d.renderActions()))
	b.WriteString("\n\n")

	if genres := m.TopGenres(MaxGenres); len(genres) > 0 {
		chips := make([]string, len(genres))
		for i, g := range genres {
			chips[i] = styles.ChipStyle.Render(g.Name)
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.SectionStyle.Render("Overview"))
	b.WriteString("\n")
	overview := m.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(wrap.Render(styles.NormalItemStyle.Render(overview)))
	b.WriteString("\n\n")

	if cast := m.TopCast(MaxCast); len(cast) > 0 {
		b.WriteString(styles.SectionStyle.Render("Top Cast"))
		b.WriteString("\n")
		for _, c := range cast {
			name := styles.Truncate(c.Name, width)
			line := styles.NormalItemStyle.Render(name)
			if rest := width - lipgloss.Width(name) - 4; c.Character != "" && rest > 0 {
				line += styles.SubtitleStyle.Render(" as " + styles.Truncate(c.Character, rest))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if d.poster != nil {
		if url := d.poster(m.PosterPath); url != "" {
			b.WriteString(styles.DimStyle.Render("Poster: " + url))
			b.WriteString("\n")
		}
	}
	b.WriteString(styles.DimStyle.Render("TMDB: " + m.PageURL()))

	return b.String()
}

func (d Details) renderActions() string {
	var trailer string
	if _, ok := d.detail.Trailer(); ok {
		trailer = styles.PrimaryButton.Render("▶ Watch Trailer [t]")
	} else {
		trailer = styles.DimStyle.Render("No trailer available")
	}

	save := styles.ChipStyle.Render("+ Save to Watchlist [s]")
	if d.saved {
		save = styles.ActiveChipStyle.Render("✓ Remove from Watchlist [s]")
	}

	link := styles.ChipStyle.Render("Copy Link [c]")
	open := styles.ChipStyle.Render("Open Page [o]")

	return strings.Join([]string{trailer, save, link, open}, "  ")
}
