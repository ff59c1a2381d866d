package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// SessionKey is the echo.Context key holding the authenticated *domain.User.
const SessionKey = "session"

// Authenticator resolves a bearer token to its user. ports.SessionService
// satisfies it.
type Authenticator interface {
	Authenticate(token string) (*domain.User, error)
}

// Session identifies the caller from a Bearer token. Requests without a valid
// token continue anonymously; RequireSession or the view policy decide what
// an anonymous caller may reach.
func Session(sessions Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}
			user, err := sessions.Authenticate(token)
			if err == nil {
				c.Set(SessionKey, user)
			}
			return next(c)
		}
	}
}

// RequireSession rejects anonymous callers with domain.ErrUnauthenticated.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// SessionFrom returns the authenticated user, or nil.
func SessionFrom(c echo.Context) *domain.User {
	user, _ := c.Get(SessionKey).(*domain.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
