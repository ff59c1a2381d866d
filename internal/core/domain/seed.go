package domain

import "time"

const day = 24 * time.Hour

// SeedUsers returns the default team used when no users are stored.
func SeedUsers() []User {
	return []User{
		{ID: "1", Name: "Alex", Avatar: "https://picsum.photos/seed/alex/40", Color: "bg-blue-500", Role: RoleAdmin, Email: "alex@syncro4.app"},
		{ID: "2", Name: "Elena", Avatar: "https://picsum.photos/seed/elena/40", Color: "bg-purple-500", Role: RoleEditor, Email: "elena@syncro4.app"},
		{ID: "3", Name: "Marc", Avatar: "https://picsum.photos/seed/marc/40", Color: "bg-emerald-500", Role: RoleEditor, Email: "marc@syncro4.app"},
		{ID: "4", Name: "Sofia", Avatar: "https://picsum.photos/seed/sofia/40", Color: "bg-amber-500", Role: RoleEditor, Email: "sofia@syncro4.app"},
	}
}

// SeedTasks returns the sample board used when no tasks are stored.
func SeedTasks(now time.Time) []Task {
	due := func(s string) *string { return &s }
	return []Task{
		{ID: "t1", Title: "Prepare Q3 Report", Status: StatusInbox, AssigneeID: "1", DueDate: due("2023-12-01"), CreatedAt: now.UnixMilli()},
		{ID: "t2", Title: "Client Interview: Acme Corp", Status: StatusProgress, AssigneeID: "2", DueDate: due("2023-11-20"), CreatedAt: now.Add(-day).UnixMilli()},
		{ID: "t3", Title: "Technical Debt Review", Status: StatusBlocked, AssigneeID: "3", CreatedAt: now.Add(-2 * day).UnixMilli()},
	}
}

// Seed returns the default state: sample tasks, the default team, no session.
func Seed(now time.Time) State {
	return State{Tasks: SeedTasks(now), Users: SeedUsers()}
}
