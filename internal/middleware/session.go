package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the browser cookie carrying the session id.
	SessionCookieName = "movie_fe_sid"

	sessionIDLocal = "session_id"
)

// SessionCookie makes sure every request carries a session id. Missing or
// malformed cookies are replaced with a fresh random id.
func SessionCookie(ttl time.Duration, secure bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Cookies(SessionCookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionIDLocal, id)

		return c.Next()
	}
}

// SessionID returns the id set by SessionCookie.
func SessionID(c fiber.Ctx) string {
	id, _ := c.Locals(sessionIDLocal).(string)
	return id
}
