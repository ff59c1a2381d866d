package domain

import (
	"encoding/json"
	"slices"
)

// TaskStatus is a stage of the board pipeline. Any stage may follow any other.
type TaskStatus string

const (
	StatusInbox    TaskStatus = "INBOX"
	StatusProgress TaskStatus = "PROGRESS"
	StatusBlocked  TaskStatus = "BLOCKED"
	StatusDone     TaskStatus = "DONE"
)

// Pipeline lists every status in board order.
var Pipeline = []TaskStatus{StatusInbox, StatusProgress, StatusBlocked, StatusDone}

var statusLabels = map[TaskStatus]string{
	StatusInbox:    "Entrada",
	StatusProgress: "En Proceso",
	StatusBlocked:  "Bloqueado",
	StatusDone:     "Hecho",
}

// Valid reports whether s is one of the pipeline stages.
func (s TaskStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the column heading shown for s on the board.
func (s TaskStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Task is a single card on the board.
//
// AssigneeID is a plain user id; it is not required to resolve to a user.
// Attachments and Links are carried verbatim and never interpreted.
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      TaskStatus      `json:"status"`
	AssigneeID  string          `json:"assigneeId"`
	DueDate     *string         `json:"dueDate"`
	CreatedAt   int64           `json:"createdAt"` // unix milliseconds
	Attachments json.RawMessage `json:"attachments,omitempty"`
	Links       json.RawMessage `json:"links,omitempty"`
}

// Active reports whether the task still needs attention.
func (t Task) Active() bool {
	return t.Status != StatusDone
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Attachments = slices.Clone(t.Attachments)
	c.Links = slices.Clone(t.Links)
	return c
}
