package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/homemanagement/todo-backend/internal/models"
)

// Username extracts the authenticated username from JWT claims in context.
func Username(c *fiber.Ctx) (string, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return "", err
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// Roles extracts the role set from JWT claims in context.
func Roles(c *fiber.Ctx) []string {
	claims, err := tokenClaims(c)
	if err != nil {
		return nil
	}

	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// IsAdmin reports whether the authenticated caller holds the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	for _, r := range Roles(c) {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
