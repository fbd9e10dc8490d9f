package navigator

import "github.com/sebastianmoiras/movie-FE/internal/models"

// Request is a call the caller must make against the catalog service. Every
// request except Login and Signup carries the session's bearer token.
type Request interface {
	request()
	// Describe names the request in user-facing error messages.
	Describe() string
}

const (
	RecommendLimit   = 10
	LikedMoviesLimit = 20
)

type (
	LoginRequest struct {
		Email    string
		Password string
	}

	SignupRequest struct {
		Signup models.SignupRequest
	}

	FetchCatalog struct {
		Token string
	}

	SearchMovies struct {
		Token string
		Query string
	}

	FetchMovie struct {
		Token   string
		MovieID int
	}

	SendFeedback struct {
		Token    string
		Feedback models.Feedback
	}

	FetchRecommendations struct {
		Token  string
		UserID int
		Limit  int
	}

	FetchLikedMovies struct {
		Token  string
		UserID int
		Limit  int
	}
)

func (LoginRequest) request()         {}
func (SignupRequest) request()        {}
func (FetchCatalog) request()         {}
func (SearchMovies) request()         {}
func (FetchMovie) request()           {}
func (SendFeedback) request()         {}
func (FetchRecommendations) request() {}
func (FetchLikedMovies) request()     {}

func (LoginRequest) Describe() string         { return "Login" }
func (SignupRequest) Describe() string        { return "Signup" }
func (FetchCatalog) Describe() string         { return "Fetching movies" }
func (SearchMovies) Describe() string         { return "Search" }
func (FetchMovie) Describe() string           { return "Fetching movie details" }
func (SendFeedback) Describe() string         { return "Saving feedback" }
func (FetchRecommendations) Describe() string { return "Fetching recommendations" }
func (FetchLikedMovies) Describe() string     { return "Fetching liked movies" }
