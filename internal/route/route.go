package route

import (
	"koala-user-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// RouteConfig handles route registration
type RouteConfig struct {
	App *fiber.App
}

// NewRouteConfig initializes the router
func NewRouteConfig(app *fiber.App) *RouteConfig {
	return &RouteConfig{app}
}

func (r *RouteConfig) WelcomeRoutes(welcomeController *controller.WelcomeController) {
	r.App.Get("/", welcomeController.Hello)
}

// RegisterAuthRoutes defines authentication routes. loginLimiter only guards login.
func (r *RouteConfig) RegisterAuthRoutes(authController *controller.AuthController, loginLimiter fiber.Handler) {
	auth := r.App.Group("/api/auth")
	{
		auth.Post("/register", authController.Register)
		auth.Post("/login", loginLimiter, authController.Login)
		auth.Post("/refresh-token", authController.RefreshToken)
		auth.Post("/logout", authController.Logout)
	}
}

// RegisterUserRoutes defines user-related routes with authentication middleware
func (r *RouteConfig) RegisterUserRoutes(userController *controller.UserController, authMiddleware fiber.Handler) {
	user := r.App.Group("/api/users")
	user.Use(authMiddleware)
	{
		user.Get("/me", userController.Me)
		user.Get("/lookup", userController.Lookup)
	}
}
