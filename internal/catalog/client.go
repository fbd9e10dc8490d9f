package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sebastianmoiras/movie-FE/internal/models"
)

const maxResponseBytes = 4 << 20

// ErrRejected matches every RejectedError.
var ErrRejected = errors.New("rejected by catalog service")

// RejectedError is an application-level refusal ({"success": false}).
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrRejected)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrRejected, e.Message)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

// APIError is a non-2xx response. Message is taken from the body when present.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: catalog service returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: catalog service returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Client talks to the remote catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)

	var resp models.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", q, "", &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		return nil, &RejectedError{Op: "login", Message: resp.Message}
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) error {
	q := url.Values{}
	q.Set("name", req.Name)
	q.Set("email", req.Email)
	q.Set("password", req.Password)
	q.Set("age", strconv.Itoa(req.Age))
	q.Set("nationality", req.Nationality)
	q.Set("gender", req.Gender)
	for _, id := range req.PreferredGenres {
		q.Add("preferred_genres", strconv.Itoa(id))
	}

	var resp models.StatusResponse
	if err := c.do(ctx, "signup", http.MethodPost, "/signup", q, "", &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Op: "signup", Message: resp.Message}
	}
	return nil
}

// Search returns the movies matching query.
func (c *Client) Search(ctx context.Context, token, query string) ([]models.Movie, error) {
	q := url.Values{}
	q.Set("query", query)

	var movies []models.Movie
	if err := c.do(ctx, "search", http.MethodGet, "/search", q, token, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListMovies returns the unfiltered catalog.
func (c *Client) ListMovies(ctx context.Context, token string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.do(ctx, "list movies", http.MethodGet, "/movies", nil, token, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns the detail form of a single movie.
func (c *Client) GetMovie(ctx context.Context, token string, movieID int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	path := "/movies/" + strconv.Itoa(movieID)
	if err := c.do(ctx, "get movie", http.MethodGet, path, nil, token, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SubmitFeedback records a rating for a movie.
func (c *Client) SubmitFeedback(ctx context.Context, token string, fb models.Feedback) error {
	q := url.Values{}
	q.Set("userid", strconv.Itoa(fb.UserID))
	q.Set("movieid", strconv.Itoa(fb.MovieID))
	q.Set("rating", strconv.Itoa(fb.Rating))
	q.Set("liked", strconv.FormatBool(fb.Liked))

	var resp models.StatusResponse
	if err := c.do(ctx, "feedback", http.MethodPost, "/feedback", q, token, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Op: "feedback", Message: resp.Message}
	}
	return nil
}

// Recommend returns personalized recommendations for userID.
func (c *Client) Recommend(ctx context.Context, token string, userID, limit int) (*models.RecommendationResponse, error) {
	var resp models.RecommendationResponse
	if err := c.do(ctx, "recommend", http.MethodGet, "/recommend", userQuery(userID, limit), token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LikedMovies returns the movies userID liked.
func (c *Client) LikedMovies(ctx context.Context, token string, userID, limit int) ([]models.Movie, error) {
	var resp models.LikedMoviesResponse
	if err := c.do(ctx, "liked movies", http.MethodGet, "/liked-movies", userQuery(userID, limit), token, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

func userQuery(userID, limit int) url.Values {
	q := url.Values{}
	q.Set("userid", strconv.Itoa(userID))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// do sends the request and decodes a 2xx JSON body into out. Parameters always
// travel in the query string, including for POST.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("calling catalog service", "op", op, "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: HTTP request failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		var status models.StatusResponse
		if json.Unmarshal(body, &status) == nil {
			apiErr.Message = status.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
