package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/core/domain"
)

func TestAuthHandler_Accounts(t *testing.T) {
	store := newStubStore(domain.State{Users: []domain.User{adminUser, editorUser}})
	handler := NewAuthHandler(&stubSessions{}, store)
	c, rec := newContext(http.MethodGet, "/auth/accounts", "", nil)

	if err := handler.Accounts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp accountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Accounts) != 2 || resp.Accounts[0].ID != "1" {
		t.Fatalf("unexpected accounts: %+v", resp.Accounts)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(ctx context.Context, userID string) (string, *domain.User, error) {
			if userID != "2" {
				t.Fatalf("unexpected user id %q", userID)
			}
			u := editorUser
			return "token123", &u, nil
		},
	}
	handler := NewAuthHandler(stub, newStubStore(domain.State{}))
	c, rec := newContext(http.MethodPost, "/auth/login", `{"user_id":"2"}`, nil)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "2" || user["role"] != "EDITOR" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_UnknownAccount(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserNotFound
		},
	}
	handler := NewAuthHandler(stub, newStubStore(domain.State{}))
	c, _ := newContext(http.MethodPost, "/auth/login", `{"user_id":"ghost"}`, nil)

	if err := handler.Login(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, newStubStore(domain.State{}))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing user id", `{}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/auth/login", tt.body, nil)
			err := handler.Login(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != tt.code {
				t.Fatalf("expected HTTP %d, got %v", tt.code, err)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubSessions{}
	handler := NewAuthHandler(stub, newStubStore(domain.State{}))

	c, rec := newContext(http.MethodPost, "/auth/logout", "", &editorUser)
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.logoutCalls != 1 {
		t.Fatalf("expected 204 and one logout, got %d / %d", rec.Code, stub.logoutCalls)
	}

	anon, _ := newContext(http.MethodPost, "/auth/logout", "", nil)
	if err := handler.Logout(anon); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
