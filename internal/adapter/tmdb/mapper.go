package tmdb

import (
	"sort"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapMovies converts list results to domain summaries, skipping non-movie entries
func MapMovies(results []MovieResult) []domain.MovieSummary {
	movies := make([]domain.MovieSummary, 0, len(results))
	for _, r := range results {
		if r.MediaType != "" && r.MediaType != "movie" {
			continue
		}
		movies = append(movies, mapMovie(r))
	}
	return movies
}

func mapMovie(r MovieResult) domain.MovieSummary {
	return domain.MovieSummary{
		ID:           r.ID,
		Title:        r.Title,
		Overview:     r.Overview,
		PosterPath:   deref(r.PosterPath),
		BackdropPath: deref(r.BackdropPath),
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		ReleaseDate:  r.ReleaseDate,
	}
}

// MapDetails converts a details response to a domain detail
func MapDetails(d MovieDetails) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		MovieSummary: mapMovie(d.MovieResult),
		Runtime:      d.Runtime,
		Tagline:      d.Tagline,
		Genres:       make([]domain.Genre, 0, len(d.Genres)),
		Cast:         make([]domain.CastMember, 0, len(d.Credits.Cast)),
		Videos:       make([]domain.Video, 0, len(d.Videos.Results)),
	}

	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	for _, v := range d.Videos.Results {
		detail.Videos = append(detail.Videos, domain.Video{
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
		})
	}

	for _, c := range d.Credits.Cast {
		detail.Cast = append(detail.Cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
			Order:       c.Order,
		})
	}
	// Billing order; TMDB usually sends it sorted but does not promise to
	sort.SliceStable(detail.Cast, func(i, j int) bool {
		return detail.Cast[i].Order < detail.Cast[j].Order
	})

	return detail
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
