package domain

import "time"

// Slot names one independently persisted part of the board state.
type Slot string

const (
	SlotTasks   Slot = "tasks"
	SlotUsers   Slot = "users"
	SlotSession Slot = "current_user"
)

// State is the whole board: both collections and the active session.
type State struct {
	Tasks   []Task
	Users   []User
	Session *User
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Tasks: make([]Task, len(s.Tasks)),
		Users: make([]User, len(s.Users)),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.Users, s.Users)
	if s.Session != nil {
		u := *s.Session
		out.Session = &u
	}
	return out
}

// Change describes one completed mutation of the store.
type Change struct {
	Op    string
	Slots []Slot
	At    time.Time
	// FlushErr is set when the mutation applied in memory but could not be
	// written to storage.
	FlushErr error
}
