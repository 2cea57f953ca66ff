package tmdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingJSON = `{
  "page": 1,
  "results": [
    {"id": 27205, "title": "Inception", "overview": "Dreams.", "poster_path": "/inception.jpg",
     "backdrop_path": null, "vote_average": 8.4, "vote_count": 35000, "release_date": "2010-07-15", "media_type": "movie"},
    {"id": 1399, "name": "Game of Thrones", "media_type": "tv"},
    {"id": 157336, "title": "Interstellar", "poster_path": null, "vote_average": 8.5, "release_date": "2014-11-05", "media_type": "movie"}
  ],
  "total_pages": 1,
  "total_results": 3
}`

const detailsJSON = `{
  "id": 27205, "title": "Inception", "poster_path": "/inception.jpg", "vote_average": 8.4,
  "release_date": "2010-07-15", "runtime": 148, "tagline": "Your mind is the scene of the crime.",
  "genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
  "videos": {"results": [
    {"key": "teaser1", "name": "Teaser", "site": "YouTube", "type": "Teaser"},
    {"key": "vim1", "name": "Trailer", "site": "Vimeo", "type": "Trailer"},
    {"key": "YoHD9XEInc0", "name": "Official Trailer", "site": "YouTube", "type": "Trailer"}
  ]},
  "credits": {"cast": [
    {"id": 2, "name": "Joseph Gordon-Levitt", "character": "Arthur", "order": 1, "profile_path": null},
    {"id": 1, "name": "Leonardo DiCaprio", "character": "Cobb", "order": 0, "profile_path": "/leo.jpg"}
  ]}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("secret-key", Options{BaseURL: srv.URL, Language: "en-US"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchTrending(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/day", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		io.WriteString(w, trendingJSON)
	})

	movies, err := c.FetchTrending(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2, "tv results are skipped")

	assert.Equal(t, domain.MovieSummary{
		ID:          27205,
		Title:       "Inception",
		Overview:    "Dreams.",
		PosterPath:  "/inception.jpg",
		VoteAverage: 8.4,
		VoteCount:   35000,
		ReleaseDate: "2010-07-15",
	}, movies[0])
	assert.Empty(t, movies[1].PosterPath)
}

func TestSearchMoviesEncodesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "harry potter & co", r.URL.Query().Get("query"))
		io.WriteString(w, `{"page":1,"results":[{"id":671,"title":"Harry Potter and the Philosopher's Stone"}]}`)
	})

	movies, err := c.SearchMovies(context.Background(), "harry potter & co")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 671, movies[0].ID)
}

func TestFetchMovieDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)
		assert.Equal(t, "videos,credits", r.URL.Query().Get("append_to_response"))
		io.WriteString(w, detailsJSON)
	})

	d, err := c.FetchMovieDetails(context.Background(), 27205)
	require.NoError(t, err)

	assert.Equal(t, "Inception", d.Title)
	assert.Equal(t, "148 min", d.FormattedRuntime())
	assert.Equal(t, []domain.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}, d.Genres)

	trailer, ok := d.Trailer()
	require.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/watch?v=YoHD9XEInc0", trailer.WatchURL())

	require.Len(t, d.Cast, 2)
	assert.Equal(t, "Leonardo DiCaprio", d.Cast[0].Name)
	assert.Equal(t, "/leo.jpg", d.Cast[0].ProfilePath)
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})

	_, err := c.FetchMovieDetails(context.Background(), 1)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Status)
	assert.Contains(t, apiErr.Body, "could not be found")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}

func TestAPIErrorBodyTruncatesOnRuneBoundary(t *testing.T) {
	// The 512-byte cut lands inside the first two-byte rune
	body := strings.Repeat("a", maxErrorBody-1) + strings.Repeat("é", 10)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, body)
	})

	_, err := c.SearchMovies(context.Background(), "dune")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Body))
	assert.Equal(t, strings.Repeat("a", maxErrorBody-1)+"…", apiErr.Body)
	assert.True(t, utf8.ValidString(err.Error()))
}

func TestTruncate(t *testing.T) {
	short := "not found"
	assert.Equal(t, short, truncate(short))

	exact := strings.Repeat("x", maxErrorBody)
	assert.Equal(t, exact, truncate(exact))

	wide := strings.Repeat("界", maxErrorBody)
	out := truncate(wide)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), maxErrorBody+len("…"))
}

func TestUnauthorizedIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.FetchTrending(context.Background())
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Empty(t, apiErr.Body)
	assert.Equal(t, "TMDB 401 Unauthorized", apiErr.Error())
}

func TestNetworkErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := NewClient("secret-key", Options{BaseURL: baseURL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.FetchTrending(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "api key leaked: %v", err)
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient("", Options{BaseURL: "http://127.0.0.1:1"}, nil)
	_, err := c.SearchMovies(context.Background(), "batman")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestCancelledContextIsNotNetworkError(t *testing.T) {
	block := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchMovies(ctx, "batman")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}

func TestMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results": [`)
	})

	_, err := c.FetchTrending(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL("", PosterSize, ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", ImageURL("", PosterSize, "/a.jpg"))
	assert.Equal(t, "https://cdn.example/t/p/w185/b.jpg", ImageURL("https://cdn.example/t/p/", ProfileSize, "b.jpg"))
}
