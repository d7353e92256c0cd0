package controller

import (
	"koala-user-service/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type WelcomeController struct {
	appName string
	tracer  trace.Tracer
}

// NewWelcomeController creates a new instance of WelcomeController
func NewWelcomeController(appName string) *WelcomeController {
	return &WelcomeController{appName, otel.Tracer("WelcomeController")}
}

// Hello doubles as a liveness probe.
func (r *WelcomeController) Hello(ctx *fiber.Ctx) error {
	_, span := r.tracer.Start(ctx.UserContext(), "Hello")
	defer span.End()

	return ctx.JSON(dto.WebResponse[map[string]string]{
		Data: map[string]string{
			"message": "Welcome to " + r.appName,
			"status":  "ok",
		},
	})
}
