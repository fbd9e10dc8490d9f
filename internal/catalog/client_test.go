package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastianmoiras/movie-FE/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "ann@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "Secret123", r.URL.Query().Get("password"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "t1", "name": "Ann", "userid": 7})
	})

	resp, err := c.Login(context.Background(), "ann@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Token)
	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, 7, resp.UserID)
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "wrong password"})
	})

	_, err := c.Login(context.Background(), "ann@example.com", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))

	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "wrong password", rej.Message)
}

func TestLoginUnauthorizedCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "unknown user"})
	})

	_, err := c.Login(context.Background(), "x@y", "z")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "unknown user", apiErr.Message)
}

func TestSignupSendsRepeatedGenres(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/signup", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, []string{"7", "1", "15"}, q["preferred_genres"])
		assert.Equal(t, "indonesian", q.Get("nationality"))
		assert.Equal(t, "30", q.Get("age"))
		assert.Equal(t, "female", q.Get("gender"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	err := c.Signup(context.Background(), models.SignupRequest{
		Name:            "Ann",
		Email:           "ann@example.com",
		Password:        "Abcdefg1",
		Age:             30,
		Nationality:     "indonesian",
		Gender:          "female",
		PreferredGenres: []int{7, 1, 15},
	})
	require.NoError(t, err)
}

func TestSearchUsesBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		assert.Equal(t, "heat", r.URL.Query().Get("query"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"movieid": 1, "title": "Heat", "poster_url": "http://img/1.jpg"},
			{"movieid": nil, "title": "Broken"},
		})
	})

	movies, err := c.Search(context.Background(), "t1", "heat")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, models.Movie{MovieID: 1, Title: "Heat", PosterURL: "http://img/1.jpg"}, movies[0])
	assert.False(t, movies[1].HasID())
}

func TestListMoviesStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListMovies(context.Background(), "t1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestGetMovie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/42", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"movieid":      42,
			"title":        "Heat",
			"release_date": "1995-12-15",
			"language":     "en",
			"genres":       []string{"Crime", "Drama"},
			"overview":     "A heist.",
		})
	})

	m, err := c.GetMovie(context.Background(), "t1", 42)
	require.NoError(t, err)
	assert.Equal(t, "1995-12-15", m.ReleaseDate)
	assert.Equal(t, []string{"Crime", "Drama"}, m.Genres)
}

func TestSubmitFeedbackParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/feedback", r.URL.Path)
		assert.Equal(t, "7", q.Get("userid"))
		assert.Equal(t, "42", q.Get("movieid"))
		assert.Equal(t, "5", q.Get("rating"))
		assert.Equal(t, "true", q.Get("liked"))
		assert.Len(t, q, 4)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	err := c.SubmitFeedback(context.Background(), "t1", models.Feedback{UserID: 7, MovieID: 42, Rating: 5, Liked: true})
	require.NoError(t, err)
}

func TestRecommendAndLiked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommend":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, map[string]any{"method": "content", "movies": []map[string]any{{"movieid": 3, "title": "C"}}})
		case "/liked-movies":
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, map[string]any{"movies": []map[string]any{}})
		default:
			http.NotFound(w, r)
		}
	})

	rec, err := c.Recommend(context.Background(), "t1", 7, 10)
	require.NoError(t, err)
	assert.Equal(t, "content", rec.Method)
	assert.Len(t, rec.Movies, 1)

	liked, err := c.LikedMovies(context.Background(), "t1", 7, 20)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.ListMovies(context.Background(), "t1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := c.ListMovies(context.Background(), "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
