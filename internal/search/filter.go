package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// SavedMatch is a watchlist entry matched by FilterSaved
type SavedMatch struct {
	Movie          domain.SavedMovie
	MatchedIndexes []int // Character positions that matched (for highlighting)
	Score          int   // Higher is better
}

// savedSource implements fuzzy.Source over watchlist titles
type savedSource []domain.SavedMovie

func (s savedSource) String(i int) string { return s[i].Title }
func (s savedSource) Len() int            { return len(s) }

// FilterSaved fuzzy-filters the watchlist by title.
// An empty query returns every movie in list order with no highlights.
func FilterSaved(query string, movies []domain.SavedMovie) []SavedMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]SavedMatch, len(movies))
		for i, m := range movies {
			out[i] = SavedMatch{Movie: m}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, savedSource(movies))
	out := make([]SavedMatch, len(matches))
	for i, match := range matches {
		out[i] = SavedMatch{
			Movie:          movies[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return out
}

// RankTitles narrows a loaded movie list to titles matching query,
// closest matches first. Ties keep their original order.
func RankTitles(query string, movies []domain.MovieSummary) []domain.MovieSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	ranks := lfuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.MovieSummary, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, movies[r.OriginalIndex])
	}
	return out
}
