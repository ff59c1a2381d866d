package handler

import (
	"encoding/json"

	"github.com/syncro4/taskboard/internal/core/domain"
)

type createTaskRequest struct {
	Title       string          `json:"title"       validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Status      string          `json:"status"      validate:"omitempty,status"`
	AssigneeID  string          `json:"assigneeId"`
	DueDate     *string         `json:"dueDate"     validate:"omitempty,datetime=2006-01-02"`
	Attachments json.RawMessage `json:"attachments,omitempty" swaggertype:"array,object"`
	Links       json.RawMessage `json:"links,omitempty"       swaggertype:"array,object"`
}

type updateTaskRequest struct {
	Title       string          `json:"title"       validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Status      string          `json:"status"      validate:"required,status"`
	AssigneeID  string          `json:"assigneeId"`
	DueDate     *string         `json:"dueDate"     validate:"omitempty,datetime=2006-01-02"`
	CreatedAt   int64           `json:"createdAt"`
	Attachments json.RawMessage `json:"attachments,omitempty" swaggertype:"array,object"`
	Links       json.RawMessage `json:"links,omitempty"       swaggertype:"array,object"`
}

// clearDueDate treats an emptied date input as no due date.
func clearDueDate(d **string) {
	if *d != nil && **d == "" {
		*d = nil
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,status"`
}

type assigneeSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

// taskResponse is a task with its assignee resolved. Assignee is null when
// the id no longer matches an account.
type taskResponse struct {
	domain.Task
	Assignee *assigneeSummary `json:"assignee"`
}
