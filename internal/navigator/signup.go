package navigator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sebastianmoiras/movie-FE/internal/models"
)

// Genre is one entry of the fixed preferred-genre table.
type Genre struct {
	ID   int
	Name string
}

// Genres is the enumerated set offered at signup, in display order.
var Genres = []Genre{
	{1, "Action"}, {2, "Adventure"}, {3, "Animation"}, {4, "Comedy"},
	{5, "Crime"}, {6, "Documentary"}, {7, "Drama"}, {8, "Family"},
	{9, "Fantasy"}, {10, "History"}, {11, "Horror"}, {12, "Music"},
	{13, "Mystery"}, {14, "Romance"}, {15, "Science Fiction"},
	{16, "Thriller"}, {17, "TV Movie"}, {18, "War"}, {19, "Western"},
}

// GenreByID looks up a genre in the fixed table.
func GenreByID(id int) (Genre, bool) {
	for _, g := range Genres {
		if g.ID == id {
			return g, true
		}
	}
	return Genre{}, false
}

const (
	MinPasswordLength = 8
	MinGenres         = 3

	MinAge = 1
	MaxAge = 120
)

// ValidationError is a signup rule failure. Its message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrEmailFormat  = &ValidationError{Message: "Email must contain @"}
	ErrPasswordRule = &ValidationError{Message: "Password must be at least 8 characters long and contain an uppercase letter and a number"}
	ErrTooFewGenres = &ValidationError{Message: "Pick at least 3 genres"}
)

// SignupForm is the raw signup input as typed by the user.
type SignupForm struct {
	Name        string
	Email       string
	Password    string
	Age         int
	Nationality string
	Gender      string
	Genres      []Genre
}

// Validate applies the client-side rules in order and returns the first failure.
func (f SignupForm) Validate() error {
	if !strings.Contains(f.Email, "@") {
		return ErrEmailFormat
	}
	if !validPassword(f.Password) {
		return ErrPasswordRule
	}
	if len(distinctGenres(f.Genres)) < MinGenres {
		return ErrTooFewGenres
	}
	return nil
}

func validPassword(p string) bool {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return false
	}
	var upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// Normalize converts a validated form into the wire request.
func (f SignupForm) Normalize() models.SignupRequest {
	unique := distinctGenres(f.Genres)
	ids := make([]int, 0, len(unique))
	for _, g := range unique {
		ids = append(ids, g.ID)
	}
	return models.SignupRequest{
		Name:            f.Name,
		Email:           f.Email,
		Password:        f.Password,
		Age:             f.Age,
		Nationality:     strings.ToLower(f.Nationality),
		Gender:          f.Gender,
		PreferredGenres: ids,
	}
}

// distinctGenres drops repeated genres, keeping first-seen order.
func distinctGenres(in []Genre) []Genre {
	seen := make(map[int]bool, len(in))
	out := make([]Genre, 0, len(in))
	for _, g := range in {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}
