// Package persist maps board slots onto a key-value backend.
//
// Each slot is stored under <prefix><slot> as one JSON document and every save
// replaces the whole document. Loading never fails: missing, unreadable or
// malformed slots fall back to their defaults with a warning.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
)

// DefaultKeyPrefix namespaces the slot keys.
const DefaultKeyPrefix = "s4_"

var _ ports.StateRepository = (*Adapter)(nil)

// Adapter implements ports.StateRepository over a ports.KVStore.
type Adapter struct {
	kv     ports.KVStore
	prefix string
	log    zerolog.Logger
}

func NewAdapter(kv ports.KVStore, prefix string, log zerolog.Logger) *Adapter {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Adapter{kv: kv, prefix: prefix, log: log}
}

// Key returns the storage key of slot.
func (a *Adapter) Key(slot domain.Slot) string {
	return a.prefix + string(slot)
}

func (a *Adapter) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return a.save(ctx, domain.SlotTasks, tasks)
}

func (a *Adapter) SaveUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	return a.save(ctx, domain.SlotUsers, users)
}

// SaveSession writes the active user, or deletes the slot when session is nil.
func (a *Adapter) SaveSession(ctx context.Context, session *domain.User) error {
	if session == nil {
		return a.Clear(ctx, domain.SlotSession)
	}
	return a.save(ctx, domain.SlotSession, session)
}

// Clear removes slot from storage.
func (a *Adapter) Clear(ctx context.Context, slot domain.Slot) error {
	if err := a.kv.Delete(ctx, a.Key(slot)); err != nil {
		return fmt.Errorf("clear %s: %w", slot, err)
	}
	return nil
}

// Hydrate loads every slot, substituting the matching part of seed for slots
// that are absent or unusable. A stored session survives only when its user
// is still in the hydrated team, and is replaced by that user's record.
func (a *Adapter) Hydrate(ctx context.Context, seed domain.State) domain.State {
	state := seed.Clone()

	if tasks, ok := load[[]domain.Task](ctx, a, domain.SlotTasks); ok {
		if tasks == nil {
			tasks = []domain.Task{}
		}
		state.Tasks = tasks
	}

	if users, ok := load[[]domain.User](ctx, a, domain.SlotUsers); ok {
		if len(users) == 0 {
			a.log.Warn().Str("slot", string(domain.SlotUsers)).Msg("stored team is empty, using seed users")
		} else {
			state.Users = users
		}
	}

	state.Session = nil
	if session, ok := load[*domain.User](ctx, a, domain.SlotSession); ok && session != nil {
		for _, u := range state.Users {
			if u.ID == session.ID {
				current := u
				state.Session = &current
				break
			}
		}
		if state.Session == nil {
			a.log.Warn().Str("user_id", session.ID).Msg("stored session references unknown user, dropping it")
		}
	}

	a.log.Info().
		Int("tasks", len(state.Tasks)).
		Int("users", len(state.Users)).
		Bool("session", state.Session != nil).
		Msg("board state hydrated")
	return state
}

func (a *Adapter) save(ctx context.Context, slot domain.Slot, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}
	if err := a.kv.Put(ctx, a.Key(slot), data); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

// load reports ok=false when the slot is absent or cannot be decoded.
func load[T any](ctx context.Context, a *Adapter, slot domain.Slot) (T, bool) {
	var v T
	data, err := a.kv.Get(ctx, a.Key(slot))
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
		return v, false
	case err != nil:
		a.log.Warn().Err(err).Str("slot", string(slot)).Msg("storage unavailable, using default")
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		a.log.Warn().Err(err).Str("slot", string(slot)).Msg("stored slot is malformed, using default")
		var zero T
		return zero, false
	}
	return v, true
}
