package projection

import (
	"fmt"
	"testing"

	"github.com/syncro4/taskboard/internal/core/domain"
)

func mk(id string, status domain.TaskStatus) domain.Task {
	return domain.Task{ID: id, Title: id, Status: status}
}

func ids(tasks []domain.Task) string {
	s := ""
	for i, t := range tasks {
		if i > 0 {
			s += ","
		}
		s += t.ID
	}
	return s
}

func TestActiveTasks(t *testing.T) {
	tasks := []domain.Task{
		mk("a", domain.StatusDone),
		mk("b", domain.StatusInbox),
		mk("c", domain.StatusBlocked),
		mk("d", domain.StatusDone),
		mk("e", domain.StatusProgress),
	}

	tests := []struct {
		name  string
		limit int
		want  string
	}{
		{"all active in order", 10, "b,c,e"},
		{"capped", 2, "b,c"},
		{"non-positive uses default", 0, "b,c,e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(ActiveTasks(tasks, tt.limit)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActiveTasks_DefaultCap(t *testing.T) {
	tasks := make([]domain.Task, 0, 15)
	for i := range 15 {
		tasks = append(tasks, mk(fmt.Sprintf("t%d", i), domain.StatusInbox))
	}

	got := ActiveTasks(tasks, DefaultFocusLimit)
	if len(got) != DefaultFocusLimit {
		t.Fatalf("expected %d tasks, got %d", DefaultFocusLimit, len(got))
	}
	if got[0].ID != "t0" || got[9].ID != "t9" {
		t.Errorf("expected the first ten in order, got %s", ids(got))
	}
}

func TestTasksByStatus(t *testing.T) {
	tasks := []domain.Task{
		mk("a", domain.StatusInbox),
		mk("b", domain.StatusDone),
		mk("c", domain.StatusInbox),
	}

	if got := ids(TasksByStatus(tasks, domain.StatusInbox)); got != "a,c" {
		t.Errorf("got %q, want a,c", got)
	}
	empty := TasksByStatus(tasks, domain.StatusBlocked)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestCountActive(t *testing.T) {
	tasks := []domain.Task{
		mk("a", domain.StatusInbox),
		mk("b", domain.StatusDone),
		mk("c", domain.StatusBlocked),
	}
	if n := CountActive(tasks); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
	if n := CountActive(nil); n != 0 {
		t.Errorf("expected 0 for no tasks, got %d", n)
	}
}

func TestBoard(t *testing.T) {
	cols := Board([]domain.Task{mk("a", domain.StatusDone), mk("b", domain.StatusInbox)})

	if len(cols) != len(domain.Pipeline) {
		t.Fatalf("expected %d columns, got %d", len(domain.Pipeline), len(cols))
	}
	for i, s := range domain.Pipeline {
		if cols[i].Status != s {
			t.Errorf("column %d: expected %s, got %s", i, s, cols[i].Status)
		}
	}
	if cols[0].Label != "Entrada" || cols[0].Count != 1 || cols[3].Count != 1 || cols[1].Count != 0 {
		t.Errorf("unexpected columns: %+v", cols)
	}
}

func TestCalendarAgenda(t *testing.T) {
	date := func(s string) *string { return &s }
	empty := ""
	tasks := []domain.Task{
		{ID: "a", DueDate: date("2024-03-02")},
		{ID: "b", DueDate: date("2024-03-01")},
		{ID: "c"},
		{ID: "d", DueDate: date("2024-03-02")},
		{ID: "e", DueDate: &empty},
	}

	agenda := CalendarAgenda(tasks)

	if agenda.Undated != 2 {
		t.Errorf("expected 2 undated tasks, got %d", agenda.Undated)
	}
	if len(agenda.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(agenda.Days))
	}
	if agenda.Days[0].Date != "2024-03-01" || ids(agenda.Days[0].Tasks) != "b" {
		t.Errorf("unexpected first day: %+v", agenda.Days[0])
	}
	if agenda.Days[1].Date != "2024-03-02" || ids(agenda.Days[1].Tasks) != "a,d" {
		t.Errorf("unexpected second day: %+v", agenda.Days[1])
	}
}

func TestResolveAssignee(t *testing.T) {
	users := []domain.User{{ID: "1", Name: "Alex"}}

	if u, ok := ResolveAssignee(users, "1"); !ok || u.Name != "Alex" {
		t.Errorf("expected Alex, got %+v %v", u, ok)
	}
	if _, ok := ResolveAssignee(users, "9"); ok {
		t.Error("expected dangling id to be unresolved")
	}
}
