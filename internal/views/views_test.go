package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastianmoiras/movie-FE/internal/models"
	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

func render(t *testing.T, s navigator.Session) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s))
	return buf.String()
}

func TestRenderLogin(t *testing.T) {
	out := render(t, navigator.NewSession())
	assert.Contains(t, out, "Login to Notflix")
	assert.Contains(t, out, `action="/actions/login"`)
	assert.NotContains(t, out, "Menu")
}

func TestRenderSignupListsGenres(t *testing.T) {
	s := navigator.NewSession()
	s.Page = navigator.PageSignup
	out := render(t, s)
	for _, g := range navigator.Genres {
		assert.Contains(t, out, g.Name)
	}
	assert.Contains(t, out, `name="genres" value="19"`)
}

func TestRenderHomeGrid(t *testing.T) {
	s := navigator.NewSession()
	s.AuthToken = "t"
	s.UserName = "Ann"
	s.Page = navigator.PageHome
	s.Catalog = navigator.MovieCache{State: navigator.CachePopulated, Movies: []models.Movie{
		{MovieID: 5, Title: "Heat"},
		{Title: ""},
	}}
	s.Notice = &navigator.Notice{Level: navigator.NoticeSuccess, Text: "Feedback saved!"}

	out := render(t, s)
	assert.Contains(t, out, "Hello, Ann")
	assert.Contains(t, out, "Menu")
	assert.Contains(t, out, `name="movie_id" value="5"`)
	assert.Contains(t, out, "Untitled")
	assert.Contains(t, out, "ID unavailable")
	assert.Contains(t, out, `notice-success`)
}

func TestRenderEscapesTitles(t *testing.T) {
	s := navigator.NewSession()
	s.AuthToken = "t"
	s.Page = navigator.PageHome
	s.Catalog = navigator.MovieCache{State: navigator.CachePopulated, Movies: []models.Movie{
		{MovieID: 1, Title: "<script>alert(1)</script>"},
	}}
	out := render(t, s)
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestRenderMovieDetail(t *testing.T) {
	s := navigator.NewSession()
	s.AuthToken = "t"
	s.Page = navigator.PageMovieDetail
	s.SelectedMovieID = 42
	s.View.Movie = &models.MovieDetail{MovieID: 42, Title: "Heat", Genres: []string{"Crime", "Drama"}}

	out := render(t, s)
	assert.Contains(t, out, "Crime, Drama")
	assert.Contains(t, out, "Release Date: -")
	assert.Contains(t, out, "No description")
	assert.Contains(t, out, `action="/actions/feedback"`)
	assert.Contains(t, out, `value="3" checked`)
}

func TestRenderMovieDetailWithoutMovie(t *testing.T) {
	s := navigator.NewSession()
	s.AuthToken = "t"
	s.Page = navigator.PageMovieDetail
	s.Notice = &navigator.Notice{Level: navigator.NoticeError, Text: "Movie ID is invalid."}

	out := render(t, s)
	assert.Contains(t, out, "Movie ID is invalid.")
	assert.Contains(t, out, `action="/actions/back-to-movies"`)
	assert.NotContains(t, out, `action="/actions/feedback"`)
}

func TestRenderRecommendAndLiked(t *testing.T) {
	s := navigator.NewSession()
	s.AuthToken = "t"
	s.Page = navigator.PageRecommend
	s.View = navigator.View{Loaded: true, RecommendMethod: "content_based"}
	out := render(t, s)
	assert.Contains(t, out, "content_based")
	assert.Contains(t, out, "No recommendation for now.")

	s.Page = navigator.PageLikedMovies
	s.View = navigator.View{Loaded: true, LikedMovies: []models.Movie{{MovieID: 9, Title: "Ronin"}}}
	out = render(t, s)
	assert.Contains(t, out, "My Liked Movies")
	assert.Contains(t, out, "Ronin")
}
