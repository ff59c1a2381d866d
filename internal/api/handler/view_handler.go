package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/api/middleware"
	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/policy"
	"github.com/syncro4/taskboard/internal/core/ports"
	"github.com/syncro4/taskboard/internal/core/projection"
)

// ViewHandler serves the page projections and enforces where a session may
// navigate.
type ViewHandler struct {
	store      ports.BoardStore
	focusLimit int
}

func NewViewHandler(store ports.BoardStore, focusLimit int) *ViewHandler {
	return &ViewHandler{store: store, focusLimit: focusLimit}
}

// focusView greets the session user; Users backs the quick capture
// assignee picker.
type focusView struct {
	Destination policy.Destination `json:"destination"`
	Session     *domain.User       `json:"session"`
	Tasks       []taskResponse     `json:"tasks"`
	ActiveCount int                `json:"active_count"`
	Users       []domain.User      `json:"users"`
}

type columnView struct {
	Status domain.TaskStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int               `json:"count"`
	Tasks  []taskResponse    `json:"tasks"`
}

type teamView struct {
	Destination policy.Destination `json:"destination"`
	Columns     []columnView       `json:"columns"`
}

// agendaView pairs the team roster for collective availability with the
// due date calendar.
type agendaView struct {
	Destination policy.Destination `json:"destination"`
	Users       []domain.User      `json:"users"`
	Agenda      projection.Agenda  `json:"agenda"`
}

type adminView struct {
	Destination policy.Destination `json:"destination"`
	Users       []domain.User      `json:"users"`
}

type loginView struct {
	Destination policy.Destination `json:"destination"`
	Accounts    []domain.User      `json:"accounts"`
}

type navResponse struct {
	Session     *domain.User  `json:"session"`
	Links       []policy.Link `json:"links"`
	ActiveCount int           `json:"active_count"`
}

// Show renders a destination, or redirects with 307 to the destination the
// session is actually allowed to see.
//
// @Summary      Render a view
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        destination  path      string  true  "focus, team, agenda, admin or login"
// @Success      200          {object}  focusView
// @Success      307
// @Router       /views/{destination} [get]
func (h *ViewHandler) Show(c echo.Context) error {
	session := middleware.SessionFrom(c)
	requested := normalizeDestination(c.Param("destination"))
	resolved := policy.Navigate(session, requested)

	landing := policy.Destination(requested)
	if requested == "" {
		landing = policy.DestFocus
	}
	if landing != resolved {
		return c.Redirect(http.StatusTemporaryRedirect, "/views/"+string(resolved))
	}

	state := h.store.Snapshot()
	switch resolved {
	case policy.DestLogin:
		return c.JSON(http.StatusOK, loginView{Destination: resolved, Accounts: state.Users})
	case policy.DestTeam:
		return c.JSON(http.StatusOK, teamView{Destination: resolved, Columns: columns(state)})
	case policy.DestAgenda:
		return c.JSON(http.StatusOK, agendaView{
			Destination: resolved,
			Users:       state.Users,
			Agenda:      projection.CalendarAgenda(state.Tasks),
		})
	case policy.DestAdmin:
		return c.JSON(http.StatusOK, adminView{Destination: resolved, Users: state.Users})
	default:
		return c.JSON(http.StatusOK, focusView{
			Destination: policy.DestFocus,
			Session:     session,
			Tasks:       toTaskResponses(projection.ActiveTasks(state.Tasks, h.focusLimit), state.Users),
			ActiveCount: projection.CountActive(state.Tasks),
			Users:       state.Users,
		})
	}
}

// Nav lists the navigation links visible to the caller.
//
// @Summary      Navigation links
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navResponse
// @Router       /nav [get]
func (h *ViewHandler) Nav(c echo.Context) error {
	session := middleware.SessionFrom(c)
	resp := navResponse{Session: session, Links: policy.NavLinks(session)}
	if session != nil {
		resp.ActiveCount = projection.CountActive(h.store.Snapshot().Tasks)
	}
	return c.JSON(http.StatusOK, resp)
}

func columns(state domain.State) []columnView {
	board := projection.Board(state.Tasks)
	out := make([]columnView, 0, len(board))
	for _, col := range board {
		out = append(out, columnView{
			Status: col.Status,
			Label:  col.Label,
			Count:  col.Count,
			Tasks:  toTaskResponses(col.Tasks, state.Users),
		})
	}
	return out
}

func normalizeDestination(s string) string {
	return strings.ToLower(strings.Trim(s, "/ "))
}
