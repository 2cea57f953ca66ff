package domain

// ListItem is the common interface for movies rendered in lists and grids.
// MovieSummary and SavedMovie implement it directly.
type ListItem interface {
	// GetID returns the TMDB movie ID
	GetID() int

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display (e.g., "2010 • ★ 8.4")
	GetDescription() string
}
