package domain

import "context"

// MovieRepository provides access to the movie metadata API
type MovieRepository interface {
	// FetchTrending returns today's trending movies
	FetchTrending(ctx context.Context) ([]MovieSummary, error)

	// SearchMovies returns catalog matches for a free-text query
	SearchMovies(ctx context.Context, query string) ([]MovieSummary, error)

	// FetchMovieDetails returns details, videos and credits for one movie
	FetchMovieDetails(ctx context.Context, id int) (*MovieDetail, error)
}

// MovieSearcher is the subset of MovieRepository the search screen needs
type MovieSearcher interface {
	SearchMovies(ctx context.Context, query string) ([]MovieSummary, error)
}
