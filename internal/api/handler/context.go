package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/api/middleware"
	"github.com/syncro4/taskboard/internal/core/domain"
)

// currentSession returns the user set by the Session middleware. Handlers
// behind RequireSession can rely on it; the check keeps them safe when
// mounted elsewhere.
func currentSession(c echo.Context) (*domain.User, error) {
	user := middleware.SessionFrom(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// errorResponse documents the envelope written by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
