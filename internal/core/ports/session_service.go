package ports

import (
	"context"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// SessionService binds bearer tokens to the store's single active session.
type SessionService interface {
	Login(ctx context.Context, userID string) (string, *domain.User, error)
	Logout(ctx context.Context)
	// Authenticate returns the active session user when token belongs to it,
	// otherwise domain.ErrUnauthenticated.
	Authenticate(token string) (*domain.User, error)
}
