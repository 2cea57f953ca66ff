package tmdb

import "strings"

// DefaultImageBaseURL is TMDB's image CDN
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// Image sizes used by the UI
const (
	PosterSize  = "w500"
	ProfileSize = "w185"
)

// ImageURL resolves a relative image path. An empty path yields "".
func ImageURL(baseURL, size, path string) string {
	if path == "" {
		return ""
	}
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(baseURL, "/") + "/" + size + path
}
