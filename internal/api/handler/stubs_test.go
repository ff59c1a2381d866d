package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/api/middleware"
	"github.com/syncro4/taskboard/internal/core/domain"
)

// stubStore records the mutations it receives and serves a fixed state.
type stubStore struct {
	state domain.State

	created      []domain.Task
	statusCalls  map[string]domain.TaskStatus
	updated      []domain.Task
	deleted      []string
	addedDrafts  []domain.UserDraft
	userPatches  map[string]domain.UserPatch
	removeUserFn func(id string) error
}

func newStubStore(state domain.State) *stubStore {
	return &stubStore{
		state:       state,
		statusCalls: make(map[string]domain.TaskStatus),
		userPatches: make(map[string]domain.UserPatch),
	}
}

func (s *stubStore) Snapshot() domain.State { return s.state.Clone() }
func (s *stubStore) Session() *domain.User  { return s.state.Session }

func (s *stubStore) FindUser(id string) (domain.User, bool) {
	for _, u := range s.state.Users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *stubStore) CreateTask(_ context.Context, t domain.Task) {
	s.created = append(s.created, t)
}

func (s *stubStore) UpdateTaskStatus(_ context.Context, id string, status domain.TaskStatus) {
	s.statusCalls[id] = status
}

func (s *stubStore) UpdateTask(_ context.Context, t domain.Task) { s.updated = append(s.updated, t) }
func (s *stubStore) DeleteTask(_ context.Context, id string)     { s.deleted = append(s.deleted, id) }

func (s *stubStore) AddUser(_ context.Context, d domain.UserDraft) domain.User {
	s.addedDrafts = append(s.addedDrafts, d)
	return domain.NewUser("NEW001", d)
}

func (s *stubStore) RemoveUser(_ context.Context, id string) error {
	if s.removeUserFn != nil {
		return s.removeUserFn(id)
	}
	return nil
}

func (s *stubStore) UpdateUser(_ context.Context, id string, p domain.UserPatch) {
	s.userPatches[id] = p
	for i, u := range s.state.Users {
		if u.ID == id {
			s.state.Users[i] = u.Apply(p)
		}
	}
}

func (s *stubStore) Login(_ context.Context, u domain.User) { s.state.Session = &u }
func (s *stubStore) Logout(context.Context)                 { s.state.Session = nil }

func (s *stubStore) Subscribe(func(domain.Change)) func() { return func() {} }

type stubSessions struct {
	loginFn     func(ctx context.Context, userID string) (string, *domain.User, error)
	logoutCalls int
}

func (s *stubSessions) Login(ctx context.Context, userID string) (string, *domain.User, error) {
	return s.loginFn(ctx, userID)
}

func (s *stubSessions) Logout(context.Context) { s.logoutCalls++ }

func (s *stubSessions) Authenticate(string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

var (
	adminUser  = domain.User{ID: "1", Name: "Alex", Role: domain.RoleAdmin}
	editorUser = domain.User{ID: "2", Name: "Elena", Role: domain.RoleEditor}
)

// newContext builds a JSON request context, signed in as session when non-nil.
func newContext(method, target, body string, session *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		u := *session
		c.Set(middleware.SessionKey, &u)
	}
	return c, rec
}
