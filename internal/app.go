package app

import (
	"context"
	"fmt"
	"time"

	"koala-user-service/internal/config/env"
	"koala-user-service/internal/config/validation"
	"koala-user-service/internal/controller"
	"koala-user-service/internal/middleware"
	"koala-user-service/internal/repository"
	"koala-user-service/internal/route"
	"koala-user-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type BootstrapConfig struct {
	db         *gorm.DB
	web        *fiber.App
	log        *logrus.Logger
	config     *env.Config
	validation *validation.Validation
	redis      *redis.Client
}

func NewApp(log *logrus.Logger, config *env.Config, db *gorm.DB, web *fiber.App, validation *validation.Validation, redis *redis.Client) *BootstrapConfig {
	return &BootstrapConfig{db, web, log, config, validation, redis}
}

// Services builds the service layer. The seed command reuses it without HTTP.
func (app *BootstrapConfig) Services() (*service.UserService, *service.AuthService, *service.JwtService, *service.TokenService) {
	// setup repositories
	userRepository := repository.NewUserRepository(app.db)
	tokenRepository := repository.NewTokenRepository(app.redis)
	unitOfWork := repository.NewUnitOfWork(app.db)

	// setup services
	jwtService := service.NewJwtService(app.log, app.config)
	tokenService := service.NewTokenService(jwtService, tokenRepository, app.log)
	redisService := service.NewRedisService(app.redis, app.log)
	encoder := service.NewBcryptPasswordEncoder(app.config.Password.Cost)
	userService := service.NewUserService(userRepository, unitOfWork, encoder, tokenService, redisService, app.log)
	authService := service.NewAuthService(jwtService, tokenService, userRepository, app.log)

	return userService, authService, jwtService, tokenService
}

func (app *BootstrapConfig) Bootstrap() {
	userService, authService, jwtService, tokenService := app.Services()

	// setup controller
	welcomeController := controller.NewWelcomeController(app.config.App.Name)
	authController := controller.NewAuthController(userService, authService, app.log, app.validation)
	userController := controller.NewUserController(userService, app.validation, app.log)

	// setup middleware
	authMiddleware := middleware.AuthMiddleware(jwtService, tokenService, app.log)
	loginLimit := app.config.Web.RateLimit.Login
	loginLimiter := middleware.RateLimit(middleware.NewIPRateLimiter(loginLimit.Rate, loginLimit.Burst), app.log)

	// setup route
	routeConfig := route.NewRouteConfig(app.web)
	routeConfig.WelcomeRoutes(welcomeController)
	routeConfig.RegisterAuthRoutes(authController, loginLimiter)
	routeConfig.RegisterUserRoutes(userController, authMiddleware)
}

// Run serves HTTP until ctx is cancelled, then shuts fiber down gracefully.
func (app *BootstrapConfig) Run(ctx context.Context) error {
	app.Bootstrap()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", app.config.Web.Port)
		app.log.WithField("addr", addr).Info("Server started")
		if err := app.web.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.web.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	app.log.Info("Server gracefully stopped")
	return nil
}
