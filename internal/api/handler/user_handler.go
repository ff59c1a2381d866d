package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/api/metrics"
	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/policy"
	"github.com/syncro4/taskboard/internal/core/ports"
)

// UserHandler handles account management.
type UserHandler struct {
	store ports.BoardStore
}

func NewUserHandler(store ports.BoardStore) *UserHandler {
	return &UserHandler{store: store}
}

type addUserRequest struct {
	Name  string `json:"name"  validate:"max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"  validate:"omitempty,role"`
}

type updateUserRequest struct {
	Name   *string `json:"name"   validate:"omitempty,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
	Color  *string `json:"color"  validate:"omitempty,max=50"`
	Role   *string `json:"role"   validate:"omitempty,role"`
	Email  *string `json:"email"  validate:"omitempty,email"`
}

func (r updateUserRequest) patch() domain.UserPatch {
	p := domain.UserPatch{Name: r.Name, Avatar: r.Avatar, Color: r.Color, Email: r.Email}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		p.Role = &role
	}
	return p
}

// Add creates an account. Missing fields take their defaults.
//
// @Summary      Add a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addUserRequest  true  "Account fields"
// @Success      201   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Add(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := policy.Authorize(session, policy.ActionAddUser, ""); err != nil {
		return err
	}

	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user := h.store.AddUser(c.Request().Context(), domain.UserDraft{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	return c.JSON(http.StatusCreated, user)
}

// Remove deletes an account. The last account and the caller's own account
// are refused.
//
// @Summary      Remove a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Remove(c echo.Context) error {
	id := c.Param("id")
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := policy.Authorize(session, policy.ActionRemoveUser, id); err != nil {
		return err
	}

	if err := h.store.RemoveUser(c.Request().Context(), id); err != nil {
		var pv *domain.PolicyViolation
		if errors.As(err, &pv) {
			metrics.PolicyViolationsTotal.WithLabelValues(pv.Reason).Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Update merges the given fields into an account. Editors may only edit
// themselves and may not change their role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	patch := req.patch()
	if err := policy.AuthorizeUserUpdate(session, id, patch); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.PolicyViolationsTotal.WithLabelValues("forbidden").Inc()
		}
		return err
	}

	h.store.UpdateUser(c.Request().Context(), id, patch)

	user, ok := h.store.FindUser(id)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, user)
}
