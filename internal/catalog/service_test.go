package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

type fakeRepo struct {
	trending []domain.MovieSummary
	details  map[int]*domain.MovieDetail
	err      error
}

func (f *fakeRepo) FetchTrending(ctx context.Context) ([]domain.MovieSummary, error) {
	return f.trending, f.err
}

func (f *fakeRepo) SearchMovies(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	return nil, errors.New("not used")
}

func (f *fakeRepo) FetchMovieDetails(ctx context.Context, id int) (*domain.MovieDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, &domain.APIError{StatusCode: 404, Status: "Not Found"}
	}
	return d, nil
}

func movies(n int) []domain.MovieSummary {
	out := make([]domain.MovieSummary, n)
	for i := range out {
		out[i] = domain.MovieSummary{ID: i + 1, Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return out
}

func TestTrendingTop(t *testing.T) {
	svc := NewService(&fakeRepo{trending: movies(20)}, nil)

	top, err := svc.TrendingTop(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 10)
	assert.Equal(t, 1, top[0].ID)
	assert.Equal(t, 10, top[9].ID)

	few := NewService(&fakeRepo{trending: movies(3)}, nil)
	top, err = few.TrendingTop(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestTrendingError(t *testing.T) {
	boom := &domain.NetworkError{Err: errors.New("dial tcp: refused")}
	svc := NewService(&fakeRepo{err: boom}, nil)

	_, err := svc.TrendingTop(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestDetails(t *testing.T) {
	inception := &domain.MovieDetail{MovieSummary: domain.MovieSummary{ID: 27205, Title: "Inception"}}
	svc := NewService(&fakeRepo{details: map[int]*domain.MovieDetail{27205: inception}}, nil)

	got, err := svc.Details(context.Background(), 27205)
	require.NoError(t, err)
	assert.Same(t, inception, got)

	_, err = svc.Details(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{domain.ErrMissingAPIKey, "Missing TMDB API key."},
		{fmt.Errorf("trending: %w", &domain.NetworkError{Err: errors.New("timeout")}), "Network request failed (cannot reach TMDB)."},
		{&domain.APIError{StatusCode: 404, Status: "Not Found"}, "Movie not found."},
		{&domain.APIError{StatusCode: 500, Status: "Internal Server Error"}, TrendingFailed},
		{errors.New("failed to parse response"), TrendingFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err, TrendingFailed))
	}
}
