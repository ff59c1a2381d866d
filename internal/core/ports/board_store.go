package ports

import (
	"context"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// BoardStore is the authoritative owner of tasks, users and the session.
//
// Mutations that reference an unknown id are silent no-ops.
type BoardStore interface {
	Snapshot() domain.State
	Session() *domain.User
	FindUser(id string) (domain.User, bool)

	CreateTask(ctx context.Context, task domain.Task)
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus)
	UpdateTask(ctx context.Context, task domain.Task)
	DeleteTask(ctx context.Context, taskID string)

	AddUser(ctx context.Context, draft domain.UserDraft) domain.User
	// RemoveUser returns a *domain.PolicyViolation when the removal is refused.
	RemoveUser(ctx context.Context, userID string) error
	UpdateUser(ctx context.Context, userID string, patch domain.UserPatch)

	Login(ctx context.Context, user domain.User)
	Logout(ctx context.Context)

	// Subscribe registers fn for every completed mutation and returns a func
	// that removes it.
	Subscribe(fn func(domain.Change)) (unsubscribe func())
}
