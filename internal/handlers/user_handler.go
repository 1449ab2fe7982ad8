package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/homemanagement/todo-backend/internal/dto"
	"github.com/homemanagement/todo-backend/internal/middleware"
	"github.com/homemanagement/todo-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list users",
		})
	}
	return c.JSON(dto.NewUserResponseList(users))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	user, todoCount, err := h.userService.Get(id)
	if err != nil {
		return userErrorResponse(c, err, "Failed to load user")
	}

	return c.JSON(dto.UserDetailResponse{
		UserResponse: dto.NewUserResponse(user),
		CreatedAt:    user.CreatedAt,
		TodoCount:    todoCount,
	})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return userErrorResponse(c, err, "Failed to create user")
	}

	resp := dto.NewUserResponse(user)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		return userErrorResponse(c, err, "Failed to update user")
	}

	resp := dto.NewUserResponse(user)
	return c.JSON(resp)
}

func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.userService.ResetPassword(id, req.NewPassword); err != nil {
		return userErrorResponse(c, err, "Failed to reset password")
	}

	return c.JSON(dto.MessageResponse{Message: "Password reset successfully"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	if err := h.userService.Delete(id); err != nil {
		return userErrorResponse(c, err, "Failed to delete user")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	username, err := middleware.Username(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.userService.ChangePassword(username, &req); err != nil {
		// Wrong current password is a 400, matching the API contract.
		if errors.Is(err, services.ErrOldPasswordMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return userErrorResponse(c, err, "Failed to change password")
	}

	return c.JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

func userErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrPasswordTooShort):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
