package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 15 * time.Second
	defaultRPS     = 20
	defaultBurst   = 5
	userAgent      = "Marquee/1.0"

	// Cap on error bodies carried into APIError
	maxErrorBody = 512
)

// Options configures a Client; zero values take the defaults
type Options struct {
	BaseURL           string
	Language          string // e.g. "en-US"; empty lets TMDB decide
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client implements domain.MovieRepository for TMDB
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(apiKey string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRPS
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     apiKey,
		language:   opts.Language,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), defaultBurst),
		logger:     logger,
	}
}

// SetAPIKey updates the credential
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// FetchTrending returns today's trending movies
func (c *Client) FetchTrending(ctx context.Context) ([]domain.MovieSummary, error) {
	var resp PagedResponse
	if err := c.get(ctx, "/trending/movie/day", nil, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// SearchMovies searches the catalog by title
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp PagedResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// FetchMovieDetails returns details with videos and credits appended
func (c *Client) FetchMovieDetails(ctx context.Context, id int) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var resp MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), params, &resp); err != nil {
		return nil, err
	}
	return MapDetails(resp), nil
}

// ValidateKey checks the credential against /configuration
func (c *Client) ValidateKey(ctx context.Context) error {
	var discard json.RawMessage
	return c.get(ctx, "/configuration", nil, &discard)
}

// get performs an authenticated GET and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.language != "" {
		query.Set("language", c.language)
	}
	query.Set("api_key", c.apiKey)

	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", redact(err, c.apiKey))
		return nil, &domain.NetworkError{Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "body", truncate(string(body)))
		return nil, &domain.APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       truncate(strings.TrimSpace(string(body))),
		}
	}

	return body, nil
}

// redact keeps the API key out of url.Error messages
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}

// truncate caps s at maxErrorBody bytes without splitting a rune
func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
