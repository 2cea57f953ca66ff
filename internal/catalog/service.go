package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// User-facing fallbacks for the screens that load catalog data
const (
	TrendingFailed = "Failed to load trending movies."
	DetailsFailed  = "Failed to load movie details."
)

// Service loads trending lists and movie details for the screens.
type Service struct {
	repo   domain.MovieRepository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo domain.MovieRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Trending returns today's trending movies.
func (s *Service) Trending(ctx context.Context) ([]domain.MovieSummary, error) {
	movies, err := s.repo.FetchTrending(ctx)
	if err != nil {
		s.logger.Error("failed to fetch trending", "error", err)
		return nil, err
	}
	s.logger.Debug("fetched trending", "count", len(movies))
	return movies, nil
}

// TrendingTop returns at most n trending movies.
func (s *Service) TrendingTop(ctx context.Context, n int) ([]domain.MovieSummary, error) {
	movies, err := s.Trending(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(movies) > n {
		movies = movies[:n]
	}
	return movies, nil
}

// Details loads one movie with its videos and cast.
func (s *Service) Details(ctx context.Context, id int) (*domain.MovieDetail, error) {
	detail, err := s.repo.FetchMovieDetails(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch movie details", "movieID", id, "error", err)
		return nil, err
	}
	return detail, nil
}

// Message turns a load failure into a short line for the status bar.
// Errors without a specific message yield fallback.
func Message(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingAPIKey):
		return "Missing TMDB API key."
	case errors.Is(err, domain.ErrNetwork):
		return "Network request failed (cannot reach TMDB)."
	case errors.Is(err, domain.ErrMovieNotFound):
		return "Movie not found."
	default:
		return fallback
	}
}
