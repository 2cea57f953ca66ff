package domain

import (
	"fmt"
	"strconv"
)

const (
	tmdbMoviePageURL = "https://www.themoviedb.org/movie/%d"
	youtubeWatchURL  = "https://www.youtube.com/watch?v=%s"
)

// MovieSummary is a movie as it appears in trending and search listings
type MovieSummary struct {
	ID           int
	Title        string
	Overview     string
	PosterPath   string  // Relative path fragment, resolved by the presentation layer
	BackdropPath string  // Relative path fragment
	VoteAverage  float64 // 0-10 community rating
	VoteCount    int
	ReleaseDate  string // ISO date, may be partial or empty
}

// Year returns the release year parsed from ReleaseDate (0 if unknown)
func (m MovieSummary) Year() int {
	return releaseYear(m.ReleaseDate)
}

// Rating returns the vote average formatted with one decimal ("" when unrated)
func (m MovieSummary) Rating() string {
	if m.VoteAverage <= 0 {
		return ""
	}
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

// Saved converts the summary into the snapshot stored on the watchlist
func (m MovieSummary) Saved() SavedMovie {
	saved := SavedMovie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
	}
	if m.VoteCount > 0 || m.VoteAverage > 0 {
		vote := m.VoteAverage
		saved.VoteAverage = &vote
	}
	return saved
}

// PageURL returns the public TMDB page for the movie
func (m MovieSummary) PageURL() string {
	return fmt.Sprintf(tmdbMoviePageURL, m.ID)
}

// ListItem implementation for MovieSummary

func (m MovieSummary) GetID() int       { return m.ID }
func (m MovieSummary) GetTitle() string { return m.Title }

func (m MovieSummary) GetDescription() string {
	return describe(m.Year(), m.Rating())
}

// Genre is a TMDB genre tag
type Genre struct {
	ID   int
	Name string
}

// CastMember is a single billed cast entry
type CastMember struct {
	ID          int
	Name        string
	Character   string
	ProfilePath string
	Order       int
}

// Video is a clip attached to a movie (trailer, teaser, featurette)
type Video struct {
	Key  string
	Name string
	Site string // "YouTube", "Vimeo"
	Type string // "Trailer", "Teaser", "Clip"
}

// IsTrailer reports whether the video is a YouTube trailer
func (v Video) IsTrailer() bool {
	return v.Site == "YouTube" && v.Type == "Trailer"
}

// WatchURL returns the playable URL for YouTube videos ("" otherwise)
func (v Video) WatchURL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return fmt.Sprintf(youtubeWatchURL, v.Key)
}

// MovieDetail is the full detail record used by the details screen
type MovieDetail struct {
	MovieSummary
	Runtime int // Minutes, 0 if unknown
	Tagline string
	Genres  []Genre
	Cast    []CastMember
	Videos  []Video
}

// Trailer returns the first YouTube trailer, if any
func (d MovieDetail) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.IsTrailer() {
			return v, true
		}
	}
	return Video{}, false
}

// TopGenres returns at most n genres
func (d MovieDetail) TopGenres(n int) []Genre {
	if n < 0 || len(d.Genres) <= n {
		return d.Genres
	}
	return d.Genres[:n]
}

// TopCast returns at most n cast members in billing order
func (d MovieDetail) TopCast(n int) []CastMember {
	if n < 0 || len(d.Cast) <= n {
		return d.Cast
	}
	return d.Cast[:n]
}

// FormattedRuntime returns the runtime as "142 min", or a dash when unknown
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d min", d.Runtime)
}

// SavedMovie is a denormalized snapshot of a movie taken when it was saved.
// ID is unique within the watchlist.
type SavedMovie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// Year returns the release year parsed from ReleaseDate (0 if unknown)
func (s SavedMovie) Year() int {
	return releaseYear(s.ReleaseDate)
}

// Rating returns the vote average formatted with one decimal ("" when absent)
func (s SavedMovie) Rating() string {
	if s.VoteAverage == nil {
		return ""
	}
	return strconv.FormatFloat(*s.VoteAverage, 'f', 1, 64)
}

// ListItem implementation for SavedMovie

func (s SavedMovie) GetID() int       { return s.ID }
func (s SavedMovie) GetTitle() string { return s.Title }

func (s SavedMovie) GetDescription() string {
	return describe(s.Year(), s.Rating())
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func describe(year int, rating string) string {
	switch {
	case year > 0 && rating != "":
		return fmt.Sprintf("%d • ★ %s", year, rating)
	case year > 0:
		return strconv.Itoa(year)
	case rating != "":
		return "★ " + rating
	default:
		return ""
	}
}
