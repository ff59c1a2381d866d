package service

import (
	"context"
	"crypto/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
)

const (
	userIDLength   = 6
	userIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxIDAttempts  = 32
)

var _ ports.BoardStore = (*Store)(nil)

// Store owns the board state. Each mutation runs to completion, including
// the flush of the slots it touched, before the next one starts. Observers
// are notified after the lock is released.
type Store struct {
	mu    sync.Mutex
	state domain.State
	repo  ports.StateRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() string

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(domain.Change)
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for change timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how candidate user ids are produced.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// NewStore returns a store holding initial, flushing through repo.
func NewStore(initial domain.State, repo ports.StateRepository, log zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		state: initial.Clone(),
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: randomUserID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Session returns a copy of the active user, or nil when logged out.
func (s *Store) Session() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return nil
	}
	u := *s.state.Session
	return &u
}

// FindUser looks up a user by id.
func (s *Store) FindUser(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.userIndex(id); i >= 0 {
		return s.state.Users[i], true
	}
	return domain.User{}, false
}

// CreateTask puts task at the front of the board. A task whose id is
// already on the board is ignored.
func (s *Store) CreateTask(ctx context.Context, task domain.Task) {
	s.mu.Lock()
	if s.taskIndex(task.ID) >= 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", task.ID).Msg("task with existing id ignored")
		return
	}
	s.state.Tasks = slices.Insert(s.state.Tasks, 0, task.Clone())
	err := s.flushTasks(ctx)
	s.mu.Unlock()

	s.log.Info().Str("task_id", task.ID).Str("status", string(task.Status)).Msg("task created")
	s.publish("create_task", err, domain.SlotTasks)
}

// UpdateTaskStatus moves a task to another pipeline stage.
func (s *Store) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) {
	s.mu.Lock()
	i := s.taskIndex(taskID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", taskID).Msg("status change for unknown task ignored")
		return
	}
	s.state.Tasks[i].Status = status
	err := s.flushTasks(ctx)
	s.mu.Unlock()

	s.log.Info().Str("task_id", taskID).Str("status", string(status)).Msg("task status changed")
	s.publish("update_task_status", err, domain.SlotTasks)
}

// UpdateTask replaces the task that has the same id.
func (s *Store) UpdateTask(ctx context.Context, task domain.Task) {
	s.mu.Lock()
	i := s.taskIndex(task.ID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", task.ID).Msg("update for unknown task ignored")
		return
	}
	s.state.Tasks[i] = task.Clone()
	err := s.flushTasks(ctx)
	s.mu.Unlock()

	s.log.Info().Str("task_id", task.ID).Msg("task updated")
	s.publish("update_task", err, domain.SlotTasks)
}

// DeleteTask removes a task from the board.
func (s *Store) DeleteTask(ctx context.Context, taskID string) {
	s.mu.Lock()
	i := s.taskIndex(taskID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", taskID).Msg("delete for unknown task ignored")
		return
	}
	s.state.Tasks = slices.Delete(s.state.Tasks, i, i+1)
	err := s.flushTasks(ctx)
	s.mu.Unlock()

	s.log.Info().Str("task_id", taskID).Msg("task deleted")
	s.publish("delete_task", err, domain.SlotTasks)
}

// AddUser creates an account from draft and appends it to the team.
func (s *Store) AddUser(ctx context.Context, draft domain.UserDraft) domain.User {
	s.mu.Lock()
	user := domain.NewUser(s.uniqueUserID(), draft)
	s.state.Users = append(s.state.Users, user)
	err := s.flushUsers(ctx)
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user added")
	s.publish("add_user", err, domain.SlotUsers)
	return user
}

// RemoveUser deletes an account. The last remaining account and the account
// of the active session are never removed.
func (s *Store) RemoveUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	var violation *domain.PolicyViolation
	switch {
	case len(s.state.Users) <= 1:
		violation = domain.ErrLastUser
	case s.state.Session != nil && s.state.Session.ID == userID:
		violation = domain.ErrSelfRemoval
	}
	if violation != nil {
		s.mu.Unlock()
		s.log.Info().Str("user_id", userID).Str("reason", violation.Reason).Msg("user removal rejected")
		return violation
	}

	i := s.userIndex(userID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("user_id", userID).Msg("removal of unknown user ignored")
		return nil
	}
	s.state.Users = slices.Delete(s.state.Users, i, i+1)
	err := s.flushUsers(ctx)
	s.mu.Unlock()

	s.log.Info().Str("user_id", userID).Msg("user removed")
	s.publish("remove_user", err, domain.SlotUsers)
	return nil
}

// UpdateUser merges patch into an account. When the account is the active
// session, the session is refreshed to the merged record.
func (s *Store) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) {
	s.mu.Lock()
	i := s.userIndex(userID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("user_id", userID).Msg("update for unknown user ignored")
		return
	}
	updated := s.state.Users[i].Apply(patch)
	s.state.Users[i] = updated

	slots := []domain.Slot{domain.SlotUsers}
	err := s.flushUsers(ctx)
	if s.state.Session != nil && s.state.Session.ID == userID {
		session := updated
		s.state.Session = &session
		slots = append(slots, domain.SlotSession)
		if serr := s.flushSession(ctx); err == nil {
			err = serr
		}
	}
	s.mu.Unlock()

	s.log.Info().Str("user_id", userID).Msg("user updated")
	s.publish("update_user", err, slots...)
}

// Login makes user the active session.
func (s *Store) Login(ctx context.Context, user domain.User) {
	s.mu.Lock()
	s.state.Session = &user
	err := s.flushSession(ctx)
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Msg("session started")
	s.publish("login", err, domain.SlotSession)
}

// Logout clears the active session.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state.Session = nil
	err := s.flushSession(ctx)
	s.mu.Unlock()

	s.log.Info().Msg("session ended")
	s.publish("logout", err, domain.SlotSession)
}

// Subscribe registers fn for every completed mutation.
func (s *Store) Subscribe(fn func(domain.Change)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) publish(op string, flushErr error, slots ...domain.Slot) {
	change := domain.Change{Op: op, Slots: slots, At: s.now(), FlushErr: flushErr}

	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(change)
	}
}

// flush* must be called with mu held.

func (s *Store) flushTasks(ctx context.Context) error {
	return s.flushed(domain.SlotTasks, s.repo.SaveTasks(ctx, s.state.Tasks))
}

func (s *Store) flushUsers(ctx context.Context) error {
	return s.flushed(domain.SlotUsers, s.repo.SaveUsers(ctx, s.state.Users))
}

func (s *Store) flushSession(ctx context.Context) error {
	return s.flushed(domain.SlotSession, s.repo.SaveSession(ctx, s.state.Session))
}

func (s *Store) flushed(slot domain.Slot, err error) error {
	if err != nil {
		s.log.Warn().Err(err).Str("slot", string(slot)).Msg("flush failed, keeping in-memory state")
	}
	return err
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.state.Tasks, func(t domain.Task) bool { return t.ID == id })
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.state.Users, func(u domain.User) bool { return u.ID == id })
}

// uniqueUserID draws ids until one is free. After maxIDAttempts collisions
// the attempt number is appended so the loop always terminates.
func (s *Store) uniqueUserID() string {
	for attempt := 0; ; attempt++ {
		id := s.newID()
		if attempt >= maxIDAttempts {
			id += strconv.Itoa(attempt)
		}
		if s.userIndex(id) < 0 {
			return id
		}
	}
}

// randomUserID returns six random upper-case base-36 characters.
func randomUserID() string {
	b := make([]byte, userIDLength)
	if _, err := rand.Read(b); err != nil {
		// fallback: current nanoseconds in base 36
		return strings.ToUpper(strconv.FormatInt(time.Now().UnixNano()%2176782336, 36))
	}
	for i := range b {
		b[i] = userIDAlphabet[int(b[i])%len(userIDAlphabet)]
	}
	return string(b)
}
