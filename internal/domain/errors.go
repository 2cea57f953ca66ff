package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the metadata API could not be reached
	ErrNetwork = errors.New("network request failed")

	// ErrMissingAPIKey indicates no TMDB credential is configured
	ErrMissingAPIKey = errors.New("missing TMDB API key")

	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrWatchlistWrite indicates the watchlist could not be persisted
	ErrWatchlistWrite = errors.New("failed to persist watchlist")
)

// NetworkError is a transport-level failure talking to the metadata API.
// It matches ErrNetwork with errors.Is.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return ErrNetwork.Error()
	}
	return fmt.Sprintf("%s: %v", ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError is a non-success HTTP response from the metadata API
type APIError struct {
	StatusCode int
	Status     string // Status text, e.g. "Not Found"
	Body       string // Response body, may be empty
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("TMDB %d %s", e.StatusCode, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets a 404 match ErrMovieNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrMovieNotFound && e.StatusCode == 404
}
