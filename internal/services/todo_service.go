package services

import (
	"errors"
	"time"

	"github.com/homemanagement/todo-backend/internal/dto"
	"github.com/homemanagement/todo-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAssigneeNotFound = errors.New("assigned user not found")
	ErrNotOwner         = errors.New("you can only manage your own todos")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidStatus    = errors.New("invalid todo status")
	ErrInvalidCategory  = errors.New("invalid todo category")
	ErrInvalidDueDate   = errors.New("due date must be formatted as YYYY-MM-DD")
)

// TodoService manages household todos. Ownership is enforced here, not in
// the HTTP layer: admins may touch any todo, everyone else only todos
// assigned to them.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

func (s *TodoService) ListAll() ([]models.Todo, error) {
	var todos []models.Todo
	err := s.db.Preload("AssignedTo").Order("id").Find(&todos).Error
	return todos, err
}

func (s *TodoService) ListByAssignee(username string) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.db.Preload("AssignedTo").
		Joins("JOIN users ON users.id = todos.assigned_to_id").
		Where("users.username = ?", username).
		Order("todos.id").
		Find(&todos).Error
	return todos, err
}

func (s *TodoService) Create(req *dto.TodoRequest, callerUsername string) (*models.Todo, error) {
	todo, err := buildTodo(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var caller models.User
		if err := tx.Where("username = ?", callerUsername).First(&caller).Error; err != nil {
			return ErrUserNotFound
		}

		var assignee models.User
		if err := tx.First(&assignee, req.AssignedToID).Error; err != nil {
			return ErrAssigneeNotFound
		}

		if !caller.IsAdmin() && assignee.Username != callerUsername {
			return ErrNotOwner
		}

		todo.AssignedToID = assignee.ID
		if err := tx.Omit("AssignedTo").Create(todo).Error; err != nil {
			return err
		}
		todo.AssignedTo = assignee
		return nil
	})
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Update(id uint, req *dto.TodoRequest, callerUsername string) (*models.Todo, error) {
	incoming, err := buildTodo(req)
	if err != nil {
		return nil, err
	}

	var todo models.Todo
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("AssignedTo").First(&todo, id).Error; err != nil {
			return ErrTodoNotFound
		}

		var caller models.User
		if err := tx.Where("username = ?", callerUsername).First(&caller).Error; err != nil {
			return ErrUserNotFound
		}

		if !caller.IsAdmin() && todo.AssignedTo.Username != callerUsername {
			return ErrNotOwner
		}

		// Full field replacement, not a patch.
		todo.Title = incoming.Title
		todo.Description = incoming.Description
		todo.Status = incoming.Status
		todo.Category = incoming.Category
		todo.DueDate = incoming.DueDate

		if todo.Status == models.StatusCompleted {
			if todo.CompletedAt == nil {
				now := time.Now().UTC()
				todo.CompletedAt = &now
			}
		} else {
			todo.CompletedAt = nil
		}

		return tx.Omit("AssignedTo").Save(&todo).Error
	})
	if err != nil {
		return nil, err
	}

	return &todo, nil
}

func (s *TodoService) Delete(id uint, callerUsername string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.Preload("AssignedTo").First(&todo, id).Error; err != nil {
			return ErrTodoNotFound
		}

		var caller models.User
		if err := tx.Where("username = ?", callerUsername).First(&caller).Error; err != nil {
			return ErrUserNotFound
		}

		if !caller.IsAdmin() && todo.AssignedTo.Username != callerUsername {
			return ErrNotOwner
		}

		return tx.Delete(&todo).Error
	})
}

// buildTodo validates the request and maps it onto a fresh Todo. The
// completed-at timestamp is set iff the todo arrives already COMPLETED.
func buildTodo(req *dto.TodoRequest) (*models.Todo, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	status := models.TodoStatus(req.Status)
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	category := models.TodoCategory(req.Category)
	if category == "" {
		category = models.CategoryOther
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	todo := &models.Todo{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Category:     category,
		AssignedToID: req.AssignedToID,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(dto.DueDateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		due := datatypes.Date(parsed)
		todo.DueDate = &due
	}

	if status == models.StatusCompleted {
		now := time.Now().UTC()
		todo.CompletedAt = &now
	}

	return todo, nil
}
