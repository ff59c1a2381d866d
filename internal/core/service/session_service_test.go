package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/syncro4/taskboard/internal/core/domain"
)

const testSecret = "test-secret"

func newTestSessionService(t *testing.T) (*SessionService, *Store) {
	t.Helper()
	store, _ := newTestStore(t, domain.State{Users: []domain.User{u1, u2}})
	return NewSessionService(store, testSecret, time.Hour), store
}

func TestSessionService_Login_Success(t *testing.T) {
	svc, store := newTestSessionService(t)

	token, user, err := svc.Login(context.Background(), u2.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user.ID != u2.ID {
		t.Errorf("expected user %s, got %s", u2.ID, user.ID)
	}
	if s := store.Session(); s == nil || s.ID != u2.ID {
		t.Errorf("store session not set: %+v", s)
	}
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	svc, store := newTestSessionService(t)

	for _, id := range []string{"", "ghost"} {
		_, _, err := svc.Login(context.Background(), id)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("id %q: expected ErrUserNotFound, got %v", id, err)
		}
	}
	if store.Session() != nil {
		t.Error("failed login must not start a session")
	}
}

func TestSessionService_Authenticate_ValidToken(t *testing.T) {
	svc, _ := newTestSessionService(t)
	token, _, err := svc.Login(context.Background(), u1.ID)
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != u1.ID || user.Role != domain.RoleAdmin {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestSessionService_Authenticate_ReturnsFreshSession(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()
	token, _, _ := svc.Login(ctx, u1.ID)

	name := "Renamed"
	store.UpdateUser(ctx, u1.ID, domain.UserPatch{Name: &name})

	user, err := svc.Authenticate(token)
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != name {
		t.Errorf("expected refreshed name, got %q", user.Name)
	}
}

func TestSessionService_Authenticate_SupersededToken(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()
	first, _, _ := svc.Login(ctx, u1.ID)
	if _, _, err := svc.Login(ctx, u2.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Authenticate(first); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for replaced session, got %v", err)
	}
}

func TestSessionService_Authenticate_AfterLogout(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()
	token, _, _ := svc.Login(ctx, u1.ID)

	svc.Logout(ctx)

	if _, err := svc.Authenticate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestSessionService_Authenticate_InvalidToken(t *testing.T) {
	svc, _ := newTestSessionService(t)

	if _, err := svc.Authenticate("invalid.token.here"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionService_Authenticate_WrongSecret(t *testing.T) {
	svc, store := newTestSessionService(t)
	store.Login(context.Background(), u1)

	claims := jwt.MapClaims{"sub": u1.ID, "exp": time.Now().Add(time.Hour).Unix()}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))

	if _, err := svc.Authenticate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionService_Authenticate_Expired(t *testing.T) {
	svc, _ := newTestSessionService(t)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, _, err := svc.Login(context.Background(), u1.ID)
	if err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }

	if _, err := svc.Authenticate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestNewSessionService_DefaultTTL(t *testing.T) {
	store, _ := newTestStore(t, domain.State{Users: []domain.User{u1}})
	svc := NewSessionService(store, testSecret, 0)
	if svc.tokenTTL != 24*time.Hour {
		t.Errorf("expected 24h default TTL, got %v", svc.tokenTTL)
	}
}
