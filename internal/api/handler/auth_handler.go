package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	store    ports.BoardStore
}

func NewAuthHandler(sessions ports.SessionService, store ports.BoardStore) *AuthHandler {
	return &AuthHandler{sessions: sessions, store: store}
}

type loginRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type accountsResponse struct {
	Accounts []domain.User `json:"accounts"`
}

// Accounts lists the accounts offered by the login prompt.
//
// @Summary      List selectable accounts
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accountsResponse
// @Router       /auth/accounts [get]
func (h *AuthHandler) Accounts(c echo.Context) error {
	return c.JSON(http.StatusOK, accountsResponse{Accounts: h.store.Snapshot().Users})
}

// Login starts a session for the selected account and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Selected account"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.sessions.Login(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout ends the active session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := currentSession(c); err != nil {
		return err
	}
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
