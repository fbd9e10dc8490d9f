package navigator

import (
	"fmt"

	"github.com/sebastianmoiras/movie-FE/internal/models"
)

const (
	msgLoginFailed      = "Login failed"
	msgSignupSucceeded  = "Signup successful, please login!"
	msgFeedbackSaved    = "Feedback saved!"
	msgIDUnavailable    = "ID unavailable"
	msgInvalidMovieID   = "Movie ID is invalid."
	msgNoMovieSelected  = "Open a movie before sending feedback."
	msgNoSearchResults  = "No movies matched your search."
	msgRatingOutOfRange = "Rating must be between 1 and 5."
)

// Reduce applies ev to s. The input is never modified. The returned requests
// must be issued in order and each outcome dispatched back as an event.
func Reduce(s Session, ev Event) (Session, []Request) {
	next := s.clone()

	switch e := ev.(type) {
	case SubmitLogin:
		return next, []Request{LoginRequest{Email: e.Email, Password: e.Password}}

	case LoginSucceeded:
		if e.Token == "" {
			return withNotice(next, NoticeError, msgLoginFailed), nil
		}
		next.AuthToken = e.Token
		next.UserName = e.Name
		next.UserID = e.UserID
		next.Page = PageHome
		return next, nil

	case ShowSignup:
		next.Page = PageSignup
		return next, nil

	case SubmitSignup:
		if err := e.Form.Validate(); err != nil {
			return withNotice(next, NoticeError, err.Error()), nil
		}
		return next, []Request{SignupRequest{Signup: e.Form.Normalize()}}

	case SignupSucceeded:
		next.Page = PageLogin
		return withNotice(next, NoticeSuccess, msgSignupSucceeded), nil

	case BackToLogin:
		next.Page = PageLogin
		return next, nil

	case Navigate:
		if !next.Authenticated() {
			next.Page = PageLogin
			return next, nil
		}
		switch e.Page {
		case PageHome, PageRecommend, PageLikedMovies:
			next.Page = e.Page
		}
		return next, nil

	case Logout:
		return NewSession(), nil

	case SelectMovie:
		if !next.Authenticated() {
			next.Page = PageLogin
			return next, nil
		}
		if e.MovieID == 0 {
			return withNotice(next, NoticeError, msgIDUnavailable), nil
		}
		next.SelectedMovieID = e.MovieID
		next.Page = PageMovieDetail
		return next, nil

	case BackToMovies:
		next.Page = PageHome
		return next, nil

	case SubmitSearch:
		if !next.Authenticated() {
			next.Page = PageLogin
			return next, nil
		}
		next.Page = PageHome
		return next, []Request{SearchMovies{Token: next.AuthToken, Query: e.Query}}

	case SearchLoaded:
		next.SearchQuery = e.Query
		next.SearchResults = cloneMovies(e.Movies)
		if len(e.Movies) == 0 {
			return withNotice(next, NoticeInfo, msgNoSearchResults), nil
		}
		return next, nil

	case ClearSearch:
		if !next.Authenticated() {
			next.Page = PageLogin
			return next, nil
		}
		next.SearchQuery = ""
		next.SearchResults = nil
		next.Page = PageHome
		return next, nil

	case RefreshCatalog:
		if !next.Authenticated() {
			next.Page = PageLogin
			return next, nil
		}
		if next.Catalog.State == CachePopulated {
			next.Catalog.State = CacheStale
		}
		next.Page = PageHome
		return next, nil

	case SubmitFeedback:
		return submitFeedback(next, e)

	case FeedbackSaved:
		return withNotice(next, NoticeSuccess, msgFeedbackSaved), nil

	case Render:
		return render(next)

	case CatalogLoaded:
		next.Catalog = MovieCache{State: CachePopulated, Movies: cloneMovies(e.Movies)}
		next.View.Loaded = true
		return next, nil

	case MovieLoaded:
		m := e.Movie
		m.Genres = append([]string(nil), e.Movie.Genres...)
		next.View.Movie = &m
		next.View.Loaded = true
		return next, nil

	case RecommendationsLoaded:
		next.View.RecommendMethod = e.Method
		next.View.Recommendations = cloneMovies(e.Movies)
		next.View.Loaded = true
		return next, nil

	case LikedMoviesLoaded:
		next.View.LikedMovies = cloneMovies(e.Movies)
		next.View.Loaded = true
		return next, nil

	case RequestFailed:
		if _, ok := e.Request.(FetchCatalog); ok {
			next.View.CatalogUnavailable = true
		}
		return withNotice(next, NoticeError, e.Message), nil
	}

	return next, nil
}

func submitFeedback(s Session, e SubmitFeedback) (Session, []Request) {
	if !s.Authenticated() {
		s.Page = PageLogin
		return s, nil
	}
	if s.Page != PageMovieDetail || s.SelectedMovieID == 0 {
		return withNotice(s, NoticeError, msgNoMovieSelected), nil
	}
	if e.Rating < models.MinRating || e.Rating > models.MaxRating {
		return withNotice(s, NoticeError, msgRatingOutOfRange), nil
	}
	return s, []Request{SendFeedback{
		Token: s.AuthToken,
		Feedback: models.Feedback{
			UserID:  s.UserID,
			MovieID: s.SelectedMovieID,
			Rating:  e.Rating,
			Liked:   e.Liked,
		},
	}}
}

// render enforces the page guards and emits the fetches the page needs.
func render(s Session) (Session, []Request) {
	if !s.Page.Valid() {
		s.Page = PageLogin
	}
	if s.Page.RequiresAuth() && !s.Authenticated() {
		s.Page = PageLogin
		return s, nil
	}
	s.View = View{}

	switch s.Page {
	case PageHome:
		if !s.Searching() && s.Catalog.NeedsFetch() {
			return s, []Request{FetchCatalog{Token: s.AuthToken}}
		}
		s.View.Loaded = true
	case PageMovieDetail:
		if s.SelectedMovieID == 0 {
			return withNotice(s, NoticeError, msgInvalidMovieID), nil
		}
		return s, []Request{FetchMovie{Token: s.AuthToken, MovieID: s.SelectedMovieID}}
	case PageRecommend:
		return s, []Request{FetchRecommendations{Token: s.AuthToken, UserID: s.UserID, Limit: RecommendLimit}}
	case PageLikedMovies:
		return s, []Request{FetchLikedMovies{Token: s.AuthToken, UserID: s.UserID, Limit: LikedMoviesLimit}}
	}
	return s, nil
}

func withNotice(s Session, level NoticeLevel, text string) Session {
	s.Notice = &Notice{Level: level, Text: text}
	return s
}

// FailureMessage formats the notice text for a failed request.
func FailureMessage(req Request, detail string) string {
	if detail == "" {
		return req.Describe() + " failed"
	}
	return fmt.Sprintf("%s failed: %s", req.Describe(), detail)
}
