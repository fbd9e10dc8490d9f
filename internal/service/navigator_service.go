package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sebastianmoiras/movie-FE/internal/catalog"
	"github.com/sebastianmoiras/movie-FE/internal/models"
	"github.com/sebastianmoiras/movie-FE/internal/navigator"
	"github.com/sebastianmoiras/movie-FE/internal/repository"
)

// Catalog is the subset of the remote catalog service the navigator needs.
type Catalog interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) error
	Search(ctx context.Context, token, query string) ([]models.Movie, error)
	ListMovies(ctx context.Context, token string) ([]models.Movie, error)
	GetMovie(ctx context.Context, token string, movieID int) (*models.MovieDetail, error)
	SubmitFeedback(ctx context.Context, token string, fb models.Feedback) error
	Recommend(ctx context.Context, token string, userID, limit int) (*models.RecommendationResponse, error)
	LikedMovies(ctx context.Context, token string, userID, limit int) ([]models.Movie, error)
}

// NavigatorService loads a session, reduces events on it, performs the
// resulting catalog requests one at a time and stores the outcome.
type NavigatorService struct {
	catalog Catalog
	repo    repository.SessionRepository
	ttl     time.Duration
	locks   *sessionLocks
}

// NewNavigatorService creates a NavigatorService.
func NewNavigatorService(c Catalog, repo repository.SessionRepository, ttl time.Duration) *NavigatorService {
	return &NavigatorService{
		catalog: c,
		repo:    repo,
		ttl:     ttl,
		locks:   newSessionLocks(),
	}
}

// Session returns the stored session, or a fresh one when none exists.
func (s *NavigatorService) Session(ctx context.Context, sessionID string) (navigator.Session, error) {
	state, ok, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return navigator.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return navigator.NewSession(), nil
	}
	return state, nil
}

// Dispatch applies a user action and returns the resulting session. Only
// storage failures are returned as errors; catalog failures end up in the
// session notice.
func (s *NavigatorService) Dispatch(ctx context.Context, sessionID string, ev navigator.Event) (navigator.Session, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.Session(ctx, sessionID)
	if err != nil {
		return navigator.Session{}, err
	}

	state = s.run(ctx, state, ev)

	// a missing session loads as a fresh one, so logout drops the row
	if _, ok := ev.(navigator.Logout); ok {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			return navigator.Session{}, fmt.Errorf("delete session: %w", err)
		}
		return state, nil
	}

	if err := s.repo.Save(ctx, sessionID, state, s.ttl); err != nil {
		return navigator.Session{}, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// Render prepares the session for drawing the current page. The returned
// session carries the pending notice; the stored copy has it cleared.
func (s *NavigatorService) Render(ctx context.Context, sessionID string) (navigator.Session, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.Session(ctx, sessionID)
	if err != nil {
		return navigator.Session{}, err
	}

	state = s.run(ctx, state, navigator.Render{})

	stored := state
	stored.Notice = nil
	if err := s.repo.Save(ctx, sessionID, stored, s.ttl); err != nil {
		return navigator.Session{}, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

func (s *NavigatorService) run(ctx context.Context, state navigator.Session, ev navigator.Event) navigator.Session {
	state, pending := navigator.Reduce(state, ev)
	for len(pending) > 0 {
		req := pending[0]
		pending = pending[1:]

		var more []navigator.Request
		state, more = navigator.Reduce(state, s.execute(ctx, req))
		pending = append(pending, more...)
	}
	return state
}

// execute performs one request and converts its outcome into an event.
func (s *NavigatorService) execute(ctx context.Context, req navigator.Request) navigator.Event {
	switch r := req.(type) {
	case navigator.LoginRequest:
		resp, err := s.catalog.Login(ctx, r.Email, r.Password)
		if err != nil {
			return failed(req, err)
		}
		return navigator.LoginSucceeded{Token: resp.Token, Name: resp.Name, UserID: resp.UserID}

	case navigator.SignupRequest:
		if err := s.catalog.Signup(ctx, r.Signup); err != nil {
			return failed(req, err)
		}
		return navigator.SignupSucceeded{}

	case navigator.FetchCatalog:
		movies, err := s.catalog.ListMovies(ctx, r.Token)
		if err != nil {
			return failed(req, err)
		}
		return navigator.CatalogLoaded{Movies: movies}

	case navigator.SearchMovies:
		movies, err := s.catalog.Search(ctx, r.Token, r.Query)
		if err != nil {
			return failed(req, err)
		}
		return navigator.SearchLoaded{Query: r.Query, Movies: movies}

	case navigator.FetchMovie:
		detail, err := s.catalog.GetMovie(ctx, r.Token, r.MovieID)
		if err != nil {
			return failed(req, err)
		}
		return navigator.MovieLoaded{Movie: *detail}

	case navigator.SendFeedback:
		if err := s.catalog.SubmitFeedback(ctx, r.Token, r.Feedback); err != nil {
			return failed(req, err)
		}
		return navigator.FeedbackSaved{}

	case navigator.FetchRecommendations:
		resp, err := s.catalog.Recommend(ctx, r.Token, r.UserID, r.Limit)
		if err != nil {
			return failed(req, err)
		}
		return navigator.RecommendationsLoaded{Method: resp.Method, Movies: resp.Movies}

	case navigator.FetchLikedMovies:
		movies, err := s.catalog.LikedMovies(ctx, r.Token, r.UserID, r.Limit)
		if err != nil {
			return failed(req, err)
		}
		return navigator.LikedMoviesLoaded{Movies: movies}
	}

	slog.Error("unsupported navigator request", "request", fmt.Sprintf("%T", req))
	return navigator.RequestFailed{Request: req, Message: navigator.FailureMessage(req, "")}
}

func failed(req navigator.Request, err error) navigator.Event {
	slog.Warn("catalog request failed", "request", req.Describe(), "error", err)
	return navigator.RequestFailed{Request: req, Message: userMessage(req, err)}
}

// userMessage picks the text shown to the user for a failed request.
func userMessage(req navigator.Request, err error) string {
	var rejected *catalog.RejectedError
	if errors.As(err, &rejected) {
		if rejected.Message != "" {
			return rejected.Message
		}
		return navigator.FailureMessage(req, "")
	}

	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return navigator.FailureMessage(req, fmt.Sprintf("status %d", apiErr.StatusCode))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return navigator.FailureMessage(req, "the service took too long to respond")
	}
	return navigator.FailureMessage(req, "service unavailable")
}

// sessionLocks serializes work on the same session id.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
