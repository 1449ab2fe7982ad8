package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/homemanagement/todo-backend/internal/dto"
	"github.com/homemanagement/todo-backend/internal/middleware"
	"github.com/homemanagement/todo-backend/internal/services"
)

type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListAll returns every todo; the admin gate sits in front at the route level.
func (h *TodoHandler) ListAll(c *fiber.Ctx) error {
	todos, err := h.todoService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list todos",
		})
	}
	return c.JSON(dto.NewTodoResponseList(todos))
}

func (h *TodoHandler) ListMine(c *fiber.Ctx) error {
	username, err := middleware.Username(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	todos, err := h.todoService.ListByAssignee(username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list todos",
		})
	}
	return c.JSON(dto.NewTodoResponseList(todos))
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	username, err := middleware.Username(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.TodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	todo, err := h.todoService.Create(&req, username)
	if err != nil {
		return todoErrorResponse(c, err, "Failed to create todo")
	}

	resp := dto.NewTodoResponse(todo)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	username, err := middleware.Username(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid todo id",
		})
	}

	var req dto.TodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	todo, err := h.todoService.Update(id, &req, username)
	if err != nil {
		return todoErrorResponse(c, err, "Failed to update todo")
	}

	resp := dto.NewTodoResponse(todo)
	return c.JSON(resp)
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	username, err := middleware.Username(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid todo id",
		})
	}

	if err := h.todoService.Delete(id, username); err != nil {
		return todoErrorResponse(c, err, "Failed to delete todo")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func todoErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidDueDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
