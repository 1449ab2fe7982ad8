package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homemanagement/todo-backend/internal/dto"
)

// AdminRequired gates admin-only endpoints on the ROLE_ADMIN claim. Must be
// applied after JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := Username(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
