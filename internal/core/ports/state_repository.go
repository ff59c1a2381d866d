package ports

import (
	"context"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// StateRepository flushes board slots after each mutation.
type StateRepository interface {
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	SaveUsers(ctx context.Context, users []domain.User) error
	// SaveSession stores the active user, or clears the slot when session is nil.
	SaveSession(ctx context.Context, session *domain.User) error
}
