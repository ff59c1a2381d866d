// Package policy decides which destinations and mutations a session may reach.
package policy

import (
	"strings"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// Destination is a navigable page.
type Destination string

const (
	DestFocus  Destination = "focus"
	DestTeam   Destination = "team"
	DestAgenda Destination = "agenda"
	DestAdmin  Destination = "admin"
	DestLogin  Destination = "login"
)

// Navigate resolves the page a request for requested actually lands on.
//
//   - no session: always the login prompt
//   - admin page without the ADMIN role: focus
//   - unknown or empty destinations: focus
func Navigate(session *domain.User, requested string) Destination {
	if session == nil {
		return DestLogin
	}
	switch d := Destination(strings.ToLower(strings.Trim(requested, "/ "))); d {
	case DestFocus, DestTeam, DestAgenda:
		return d
	case DestAdmin:
		if session.IsAdmin() {
			return DestAdmin
		}
	}
	return DestFocus
}

// Link is an entry of the navigation bar.
type Link struct {
	Destination Destination `json:"destination"`
	Label       string      `json:"label"`
	Path        string      `json:"path"`
}

var (
	baseLinks = []Link{
		{Destination: DestFocus, Label: "Focus", Path: "/"},
		{Destination: DestTeam, Label: "Tablero", Path: "/team"},
		{Destination: DestAgenda, Label: "Agenda", Path: "/agenda"},
	}
	adminLink = Link{Destination: DestAdmin, Label: "Admin", Path: "/admin"}
)

// NavLinks lists the destinations visible to session.
func NavLinks(session *domain.User) []Link {
	if session == nil {
		return []Link{}
	}
	links := append([]Link(nil), baseLinks...)
	if session.IsAdmin() {
		links = append(links, adminLink)
	}
	return links
}

// Action is a state mutation subject to the policy.
type Action string

const (
	ActionLogin            Action = "login"
	ActionLogout           Action = "logout"
	ActionCreateTask       Action = "create_task"
	ActionUpdateTaskStatus Action = "update_task_status"
	ActionUpdateTask       Action = "update_task"
	ActionDeleteTask       Action = "delete_task"
	ActionAddUser          Action = "add_user"
	ActionRemoveUser       Action = "remove_user"
	ActionUpdateUser       Action = "update_user"
)

// Authorize returns nil when session may perform action. targetUserID is
// consulted only for account actions.
func Authorize(session *domain.User, action Action, targetUserID string) error {
	if action == ActionLogin {
		return nil
	}
	if session == nil {
		return domain.ErrUnauthenticated
	}
	switch action {
	case ActionLogout, ActionCreateTask, ActionUpdateTaskStatus, ActionUpdateTask, ActionDeleteTask:
		return nil
	case ActionAddUser, ActionRemoveUser:
		if session.IsAdmin() {
			return nil
		}
	case ActionUpdateUser:
		if session.IsAdmin() || session.ID == targetUserID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// AuthorizeUserUpdate extends Authorize for account edits: a non-admin
// editing their own account may not change its role.
func AuthorizeUserUpdate(session *domain.User, targetUserID string, patch domain.UserPatch) error {
	if err := Authorize(session, ActionUpdateUser, targetUserID); err != nil {
		return err
	}
	if !session.IsAdmin() && patch.Role != nil && *patch.Role != session.Role {
		return domain.ErrForbidden
	}
	return nil
}
