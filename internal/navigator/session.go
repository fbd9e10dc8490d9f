// Package navigator holds the client session state machine. Reduce is pure:
// it maps (Session, Event) to a new Session plus the requests the caller must
// issue against the catalog service. Results come back in as events.
package navigator

import "github.com/sebastianmoiras/movie-FE/internal/models"

// Page identifies the active view.
type Page string

const (
	PageLogin       Page = "login"
	PageSignup      Page = "signup"
	PageHome        Page = "home"
	PageMovieDetail Page = "movie_detail"
	PageRecommend   Page = "recommend"
	PageLikedMovies Page = "liked_movies"
)

// RequiresAuth reports whether the page may only be shown to a logged-in user.
func (p Page) RequiresAuth() bool {
	return p != PageLogin && p != PageSignup
}

// Valid reports whether p is one of the known pages.
func (p Page) Valid() bool {
	switch p {
	case PageLogin, PageSignup, PageHome, PageMovieDetail, PageRecommend, PageLikedMovies:
		return true
	}
	return false
}

// CacheState tracks the unfiltered catalog cache.
type CacheState string

const (
	CacheEmpty     CacheState = "empty"
	CachePopulated CacheState = "populated"
	// CacheStale keeps the old movies displayable until the next fetch succeeds.
	CacheStale CacheState = "stale"
)

// MovieCache is the last fetched unfiltered catalog.
type MovieCache struct {
	State  CacheState     `json:"state"`
	Movies []models.Movie `json:"movies,omitempty"`
}

// NeedsFetch reports whether entering home should load the catalog.
func (c MovieCache) NeedsFetch() bool {
	return c.State == CacheEmpty || c.State == CacheStale || c.State == ""
}

// NoticeLevel classifies a user-visible message.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// View carries data fetched for the current render only.
type View struct {
	Movie *models.MovieDetail `json:"movie,omitempty"`

	RecommendMethod string         `json:"recommend_method,omitempty"`
	Recommendations []models.Movie `json:"recommendations,omitempty"`
	LikedMovies     []models.Movie `json:"liked_movies,omitempty"`

	// CatalogUnavailable is set when the catalog fetch failed during this render.
	CatalogUnavailable bool `json:"catalog_unavailable,omitempty"`
	// Loaded is set once the page's fetch succeeded, so empty lists can be told
	// apart from failed ones.
	Loaded bool `json:"loaded,omitempty"`
}

// Session is the complete client state for one browser. Values are treated as
// immutable: Reduce returns a modified copy.
type Session struct {
	AuthToken       string     `json:"auth_token,omitempty"`
	UserName        string     `json:"user_name,omitempty"`
	UserID          int        `json:"user_id,omitempty"`
	Page            Page       `json:"page"`
	SelectedMovieID int        `json:"selected_movie_id,omitempty"`
	Catalog         MovieCache `json:"catalog"`

	SearchQuery   string         `json:"search_query,omitempty"`
	SearchResults []models.Movie `json:"search_results,omitempty"`

	View   View    `json:"view"`
	Notice *Notice `json:"notice,omitempty"`
}

// NewSession returns the unauthenticated initial state.
func NewSession() Session {
	return Session{
		Page:    PageLogin,
		Catalog: MovieCache{State: CacheEmpty},
	}
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.AuthToken != ""
}

// DisplayName returns the greeting name.
func (s Session) DisplayName() string {
	if s.UserName == "" {
		return "User"
	}
	return s.UserName
}

// VisibleMovies returns the list shown on home: search results win over the cache.
func (s Session) VisibleMovies() []models.Movie {
	if len(s.SearchResults) > 0 {
		return s.SearchResults
	}
	return s.Catalog.Movies
}

// Searching reports whether search results currently override the catalog.
func (s Session) Searching() bool {
	return len(s.SearchResults) > 0
}

// clone copies the slices a reducer step may replace so callers holding the
// previous value never observe the change.
func (s Session) clone() Session {
	out := s
	out.Catalog.Movies = cloneMovies(s.Catalog.Movies)
	out.SearchResults = cloneMovies(s.SearchResults)
	out.View.Recommendations = cloneMovies(s.View.Recommendations)
	out.View.LikedMovies = cloneMovies(s.View.LikedMovies)
	if s.View.Movie != nil {
		m := *s.View.Movie
		m.Genres = append([]string(nil), s.View.Movie.Genres...)
		out.View.Movie = &m
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}

func cloneMovies(in []models.Movie) []models.Movie {
	if in == nil {
		return nil
	}
	return append([]models.Movie(nil), in...)
}
