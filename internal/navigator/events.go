package navigator

import "github.com/sebastianmoiras/movie-FE/internal/models"

// Event is a user action or the outcome of a catalog request.
type Event interface {
	event()
}

// User actions.
type (
	SubmitLogin struct {
		Email    string
		Password string
	}

	SubmitSignup struct {
		Form SignupForm
	}

	// Navigate switches between the pages reachable from the menu.
	Navigate struct {
		Page Page
	}

	SelectMovie struct {
		MovieID int
	}

	SubmitSearch struct {
		Query string
	}

	SubmitFeedback struct {
		Rating int
		Liked  bool
	}

	ShowSignup     struct{}
	BackToLogin    struct{}
	Logout         struct{}
	BackToMovies   struct{}
	ClearSearch    struct{}
	RefreshCatalog struct{}
	// Render is dispatched before each view is drawn.
	Render struct{}
)

// Request outcomes.
type (
	LoginSucceeded struct {
		Token  string
		Name   string
		UserID int
	}

	SearchLoaded struct {
		Query  string
		Movies []models.Movie
	}

	CatalogLoaded struct {
		Movies []models.Movie
	}

	MovieLoaded struct {
		Movie models.MovieDetail
	}

	RecommendationsLoaded struct {
		Method string
		Movies []models.Movie
	}

	LikedMoviesLoaded struct {
		Movies []models.Movie
	}

	// RequestFailed reports any failure of Request. Message is shown verbatim.
	RequestFailed struct {
		Request Request
		Message string
	}

	SignupSucceeded struct{}
	FeedbackSaved   struct{}
)

func (SubmitLogin) event()    {}
func (ShowSignup) event()     {}
func (SubmitSignup) event()   {}
func (BackToLogin) event()    {}
func (Navigate) event()       {}
func (Logout) event()         {}
func (SelectMovie) event()    {}
func (BackToMovies) event()   {}
func (SubmitSearch) event()   {}
func (ClearSearch) event()    {}
func (RefreshCatalog) event() {}
func (SubmitFeedback) event() {}
func (Render) event()         {}

func (LoginSucceeded) event()        {}
func (SignupSucceeded) event()       {}
func (SearchLoaded) event()          {}
func (CatalogLoaded) event()         {}
func (MovieLoaded) event()           {}
func (RecommendationsLoaded) event() {}
func (LikedMoviesLoaded) event()     {}
func (FeedbackSaved) event()         {}
func (RequestFailed) event()         {}
