package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homemanagement/todo-backend/internal/config"
	"github.com/homemanagement/todo-backend/internal/handlers"
	"github.com/homemanagement/todo-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	todoHandler *handlers.TodoHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	api.Post("/auth/login", authHandler.Login)

	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired()

	// Todos. Listing everything is admin-only; ownership of individual
	// records is enforced inside the service.
	todos := api.Group("/todos", jwt)
	todos.Get("/", admin, todoHandler.ListAll)
	todos.Get("/my", todoHandler.ListMine)
	todos.Post("/", todoHandler.Create)
	todos.Put("/:id", todoHandler.Update)
	todos.Delete("/:id", todoHandler.Delete)

	// Users. The static /password route must be registered before /:id.
	users := api.Group("/users", jwt)
	users.Put("/password", userHandler.ChangePassword)
	users.Get("/", admin, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", admin, userHandler.Get)
	users.Put("/:id", admin, userHandler.Update)
	users.Put("/:id/password", admin, userHandler.ResetPassword)
	users.Delete("/:id", admin, userHandler.Delete)
}
