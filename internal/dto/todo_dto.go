package dto

import (
	"time"

	"github.com/homemanagement/todo-backend/internal/models"
)

// DueDateLayout is the wire format for due dates. Due dates are calendar
// dates, not timestamps.
const DueDateLayout = "2006-01-02"

type TodoRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Category     string  `json:"category"`
	AssignedToID uint    `json:"assignedToId"`
	DueDate      *string `json:"dueDate"`
}

type TodoResponse struct {
	ID                 uint       `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	Category           string     `json:"category"`
	AssignedToID       uint       `json:"assignedToId"`
	AssignedToUsername string     `json:"assignedToUsername"`
	DueDate            *string    `json:"dueDate"`
	CreatedAt          time.Time  `json:"createdAt"`
	CompletedAt        *time.Time `json:"completedAt"`
}

func NewTodoResponse(t *models.Todo) TodoResponse {
	resp := TodoResponse{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Status:             string(t.Status),
		Category:           string(t.Category),
		AssignedToID:       t.AssignedToID,
		AssignedToUsername: t.AssignedTo.Username,
		CreatedAt:          t.CreatedAt,
		CompletedAt:        t.CompletedAt,
	}
	if t.DueDate != nil {
		formatted := time.Time(*t.DueDate).Format(DueDateLayout)
		resp.DueDate = &formatted
	}
	return resp
}

func NewTodoResponseList(todos []models.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, NewTodoResponse(&todos[i]))
	}
	return out
}
