package tmdb

// PagedResponse is the envelope for list endpoints (trending, search)
type PagedResponse struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []MovieResult `json:"results"`
}

// MovieResult is one movie in a list response
type MovieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	ReleaseDate  string  `json:"release_date"`
	MediaType    string  `json:"media_type,omitempty"`
}

// MovieDetails is the response from GET /movie/{id} with videos and credits appended
type MovieDetails struct {
	MovieResult
	Runtime int     `json:"runtime"`
	Tagline string  `json:"tagline"`
	Genres  []Genre `json:"genres"`
	Videos  struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is an entry of the appended videos list
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// CastMember is an entry of the appended credits.cast list
type CastMember struct {
	ID          int     `json:"id"`
	CastID      int     `json:"cast_id"`
	CreditID    string  `json:"credit_id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// ErrorResponse is TMDB's error body
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
