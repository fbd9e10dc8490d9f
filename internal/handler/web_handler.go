package handler

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/sebastianmoiras/movie-FE/internal/middleware"
	"github.com/sebastianmoiras/movie-FE/internal/models"
	"github.com/sebastianmoiras/movie-FE/internal/navigator"
	"github.com/sebastianmoiras/movie-FE/internal/views"
)

// Navigator runs session events. It is implemented by service.NavigatorService.
type Navigator interface {
	Session(ctx context.Context, sessionID string) (navigator.Session, error)
	Dispatch(ctx context.Context, sessionID string, ev navigator.Event) (navigator.Session, error)
	Render(ctx context.Context, sessionID string) (navigator.Session, error)
}

// WebHandler serves the HTML pages and the form actions posted from them.
type WebHandler struct {
	nav      Navigator
	renderer *views.Renderer
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(nav Navigator, renderer *views.Renderer) *WebHandler {
	return &WebHandler{nav: nav, renderer: renderer}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register mounts the page and action routes.
func (h *WebHandler) Register(r fiber.Router) {
	r.Get("/", h.Index)

	actions := r.Group("/actions")
	actions.Post("/login", h.Login)
	actions.Post("/signup", h.Signup)
	actions.Post("/show-signup", h.simple(navigator.ShowSignup{}))
	actions.Post("/back-to-login", h.simple(navigator.BackToLogin{}))
	actions.Post("/navigate", h.Navigate)
	actions.Post("/logout", h.simple(navigator.Logout{}))
	actions.Post("/select", h.SelectMovie)
	actions.Post("/back-to-movies", h.simple(navigator.BackToMovies{}))
	actions.Post("/search", h.Search)
	actions.Post("/clear-search", h.simple(navigator.ClearSearch{}))
	actions.Post("/refresh", h.simple(navigator.RefreshCatalog{}))
	actions.Post("/feedback", h.Feedback)

	r.Get("/api/v1/session", h.SessionSnapshot)
}

// Index renders the page the session is currently on.
// @Summary Current page
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *WebHandler) Index(c fiber.Ctx) error {
	s, err := h.nav.Render(c.Context(), middleware.SessionID(c))
	if err != nil {
		slog.Error("failed to render session", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, s); err != nil {
		slog.Error("failed to render page", "page", s.Page, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// Login submits the login form.
// @Summary Log in
// @Tags actions
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303
// @Router /actions/login [post]
func (h *WebHandler) Login(c fiber.Ctx) error {
	return h.dispatch(c, navigator.SubmitLogin{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	})
}

// Signup submits the registration form.
// @Summary Sign up
// @Tags actions
// @Accept x-www-form-urlencoded
// @Param genres formData []int false "Preferred genre ids" collectionFormat(multi)
// @Success 303
// @Router /actions/signup [post]
func (h *WebHandler) Signup(c fiber.Ctx) error {
	form := navigator.SignupForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Email:       strings.TrimSpace(c.FormValue("email")),
		Password:    c.FormValue("password"),
		Age:         clampAge(c.FormValue("age")),
		Nationality: strings.TrimSpace(c.FormValue("nationality")),
		Gender:      c.FormValue("gender", "male"),
	}
	seen := make(map[int]bool)
	for _, raw := range c.Request().PostArgs().PeekMulti("genres") {
		id, err := strconv.Atoi(string(raw))
		if err != nil || seen[id] {
			continue
		}
		if g, ok := navigator.GenreByID(id); ok {
			seen[id] = true
			form.Genres = append(form.Genres, g)
		}
	}
	return h.dispatch(c, navigator.SubmitSignup{Form: form})
}

// Navigate switches to a menu page.
// @Summary Navigate
// @Tags actions
// @Param page formData string true "Target page" Enums(home,recommend,liked_movies)
// @Success 303
// @Router /actions/navigate [post]
func (h *WebHandler) Navigate(c fiber.Ctx) error {
	return h.dispatch(c, navigator.Navigate{Page: navigator.Page(c.FormValue("page"))})
}

// SelectMovie opens the detail page of a movie.
// @Summary Select movie
// @Tags actions
// @Param movie_id formData int true "Movie ID"
// @Success 303
// @Router /actions/select [post]
func (h *WebHandler) SelectMovie(c fiber.Ctx) error {
	id, _ := strconv.Atoi(c.FormValue("movie_id"))
	return h.dispatch(c, navigator.SelectMovie{MovieID: id})
}

// Search runs a title search.
// @Summary Search movies
// @Tags actions
// @Param query formData string true "Search text"
// @Success 303
// @Router /actions/search [post]
func (h *WebHandler) Search(c fiber.Ctx) error {
	return h.dispatch(c, navigator.SubmitSearch{Query: c.FormValue("query")})
}

// Feedback rates the movie on the detail page.
// @Summary Submit feedback
// @Tags actions
// @Param rating formData int true "Rating" minimum(1) maximum(5)
// @Param liked formData bool true "Liked"
// @Success 303
// @Router /actions/feedback [post]
func (h *WebHandler) Feedback(c fiber.Ctx) error {
	rating, _ := strconv.Atoi(c.FormValue("rating"))
	liked, _ := strconv.ParseBool(c.FormValue("liked"))
	return h.dispatch(c, navigator.SubmitFeedback{Rating: rating, Liked: liked})
}

// SessionSnapshot returns the session state as JSON without the auth token.
// @Summary Session snapshot
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/session [get]
func (h *WebHandler) SessionSnapshot(c fiber.Ctx) error {
	s, err := h.nav.Session(c.Context(), middleware.SessionID(c))
	if err != nil {
		slog.Error("failed to load session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "session unavailable",
		})
	}
	return c.JSON(newSessionResponse(s))
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	Authenticated   bool           `json:"authenticated"`
	UserName        string         `json:"user_name,omitempty"`
	UserID          int            `json:"user_id,omitempty"`
	Page            navigator.Page `json:"page"`
	SelectedMovieID int            `json:"selected_movie_id,omitempty"`
	CatalogState    string         `json:"catalog_state"`
	CatalogSize     int            `json:"catalog_size"`
	SearchQuery     string         `json:"search_query,omitempty"`
	SearchResults   []models.Movie `json:"search_results,omitempty"`
}

func newSessionResponse(s navigator.Session) SessionResponse {
	return SessionResponse{
		Authenticated:   s.Authenticated(),
		UserName:        s.UserName,
		UserID:          s.UserID,
		Page:            s.Page,
		SelectedMovieID: s.SelectedMovieID,
		CatalogState:    string(s.Catalog.State),
		CatalogSize:     len(s.Catalog.Movies),
		SearchQuery:     s.SearchQuery,
		SearchResults:   s.SearchResults,
	}
}

func (h *WebHandler) simple(ev navigator.Event) fiber.Handler {
	return func(c fiber.Ctx) error {
		return h.dispatch(c, ev)
	}
}

// dispatch applies ev to the caller's session and redirects back to the page.
func (h *WebHandler) dispatch(c fiber.Ctx, ev navigator.Event) error {
	if _, err := h.nav.Dispatch(c.Context(), middleware.SessionID(c), ev); err != nil {
		slog.Error("failed to dispatch action", "path", c.Path(), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func clampAge(raw string) int {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return navigator.MinAge
	}
	if age < navigator.MinAge {
		return navigator.MinAge
	}
	if age > navigator.MaxAge {
		return navigator.MaxAge
	}
	return age
}
