// Package projection derives the read-only task views shown by each page.
//
// Every function is pure: it filters the authoritative sequence and never
// reorders tasks relative to it.
package projection

import (
	"slices"

	"github.com/syncro4/taskboard/internal/core/domain"
)

// DefaultFocusLimit caps the focus view.
const DefaultFocusLimit = 10

// ActiveTasks returns the first limit tasks that are not done.
// A non-positive limit means DefaultFocusLimit.
func ActiveTasks(tasks []domain.Task, limit int) []domain.Task {
	if limit <= 0 {
		limit = DefaultFocusLimit
	}
	out := make([]domain.Task, 0, min(limit, len(tasks)))
	for _, t := range tasks {
		if len(out) == limit {
			break
		}
		if t.Active() {
			out = append(out, t)
		}
	}
	return out
}

// TasksByStatus returns every task in the given stage.
func TasksByStatus(tasks []domain.Task, status domain.TaskStatus) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// CountActive counts tasks that are not done.
func CountActive(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Active() {
			n++
		}
	}
	return n
}

// Column is one pipeline stage of the board.
type Column struct {
	Status domain.TaskStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int               `json:"count"`
	Tasks  []domain.Task     `json:"tasks"`
}

// Board groups tasks by stage in pipeline order.
func Board(tasks []domain.Task) []Column {
	cols := make([]Column, 0, len(domain.Pipeline))
	for _, s := range domain.Pipeline {
		group := TasksByStatus(tasks, s)
		cols = append(cols, Column{
			Status: s,
			Label:  s.Label(),
			Count:  len(group),
			Tasks:  group,
		})
	}
	return cols
}

// Day holds the tasks due on one date.
type Day struct {
	Date  string        `json:"date"`
	Tasks []domain.Task `json:"tasks"`
}

// Agenda is the calendar aggregation of the board.
type Agenda struct {
	Days    []Day `json:"days"`
	Undated int   `json:"undated"`
}

// CalendarAgenda buckets tasks by due date, earliest date first.
func CalendarAgenda(tasks []domain.Task) Agenda {
	agenda := Agenda{Days: make([]Day, 0)}
	index := make(map[string]int)
	for _, t := range tasks {
		if t.DueDate == nil || *t.DueDate == "" {
			agenda.Undated++
			continue
		}
		date := *t.DueDate
		i, ok := index[date]
		if !ok {
			i = len(agenda.Days)
			index[date] = i
			agenda.Days = append(agenda.Days, Day{Date: date})
		}
		agenda.Days[i].Tasks = append(agenda.Days[i].Tasks, t)
	}
	// ISO dates sort lexically; the stable sort keeps store order inside a day.
	slices.SortStableFunc(agenda.Days, func(a, b Day) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return agenda
}

// ResolveAssignee finds the user a task points at. The second result is
// false for dangling references.
func ResolveAssignee(users []domain.User, id string) (domain.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}
