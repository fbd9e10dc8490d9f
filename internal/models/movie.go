package models

// Movie is the summary shape returned by the catalog, search, recommend and
// liked-movies endpoints. A null or missing movieid decodes to 0.
type Movie struct {
	MovieID   int    `json:"movieid"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url,omitempty"`
}

// HasID reports whether the movie can be opened in the detail view.
func (m Movie) HasID() bool {
	return m.MovieID != 0
}

// DisplayTitle returns the title or a placeholder for untitled entries.
func (m Movie) DisplayTitle() string {
	if m.Title == "" {
		return "Untitled"
	}
	return m.Title
}

// MovieDetail is the response shape for a single movie.
type MovieDetail struct {
	MovieID     int      `json:"movieid"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url,omitempty"`
	ReleaseDate string   `json:"release_date"`
	Language    string   `json:"language"`
	Genres      []string `json:"genres"`
	Overview    string   `json:"overview"`
}

// Feedback is a rating submitted for a movie. It is never stored client side.
type Feedback struct {
	UserID  int  `json:"userid"`
	MovieID int  `json:"movieid"`
	Rating  int  `json:"rating"`
	Liked   bool `json:"liked"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// RecommendationResponse wraps the recommend endpoint payload.
type RecommendationResponse struct {
	Method string  `json:"method"`
	Movies []Movie `json:"movies"`
}

// LikedMoviesResponse wraps the liked-movies endpoint payload.
type LikedMoviesResponse struct {
	Movies []Movie `json:"movies"`
}
