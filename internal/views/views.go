package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/sebastianmoiras/movie-FE/internal/models"
	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer draws the page selected by a session.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"join":   strings.Join,
		"orDash": orDash,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type pageData struct {
	Page          string
	Session       navigator.Session
	Notice        *navigator.Notice
	ShowMenu      bool
	Movies        []models.Movie
	Genres        []navigator.Genre
	Ratings       []int
	DefaultRating int
	MinAge        int
	MaxAge        int
}

// Render writes the full HTML page for s.
func (r *Renderer) Render(w io.Writer, s navigator.Session) error {
	data := pageData{
		Page:          string(s.Page),
		Session:       s,
		Notice:        s.Notice,
		ShowMenu:      s.Authenticated() && s.Page.RequiresAuth(),
		Genres:        navigator.Genres,
		DefaultRating: 3,
		MinAge:        navigator.MinAge,
		MaxAge:        navigator.MaxAge,
	}
	for n := models.MinRating; n <= models.MaxRating; n++ {
		data.Ratings = append(data.Ratings, n)
	}

	switch s.Page {
	case navigator.PageHome:
		data.Movies = s.VisibleMovies()
	case navigator.PageRecommend:
		data.Movies = s.View.Recommendations
	case navigator.PageLikedMovies:
		data.Movies = s.View.LikedMovies
	}

	return r.tmpl.ExecuteTemplate(w, "layout", data)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
