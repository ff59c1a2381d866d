package handler

import (
	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/projection"
)

func toNewTask(req createTaskRequest, id string, createdAt int64, session *domain.User) domain.Task {
	status := domain.TaskStatus(req.Status)
	if status == "" {
		status = domain.StatusInbox
	}
	assignee := req.AssigneeID
	if assignee == "" {
		assignee = session.ID
	}
	return domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		AssigneeID:  assignee,
		DueDate:     req.DueDate,
		CreatedAt:   createdAt,
		Attachments: req.Attachments,
		Links:       req.Links,
	}
}

func toReplacementTask(id string, req updateTaskRequest) domain.Task {
	return domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		CreatedAt:   req.CreatedAt,
		Attachments: req.Attachments,
		Links:       req.Links,
	}
}

func toTaskResponse(t domain.Task, users []domain.User) taskResponse {
	resp := taskResponse{Task: t}
	if u, ok := projection.ResolveAssignee(users, t.AssigneeID); ok {
		resp.Assignee = &assigneeSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Color: u.Color}
	}
	return resp
}

func toTaskResponses(tasks []domain.Task, users []domain.User) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t, users))
	}
	return out
}
