package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/user"
)

// RegisterAuthRoutes wires registration, login and email verification.
func RegisterAuthRoutes(r fiber.Router, h *user.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Get("/verify/:token", h.VerifyEmail)
}
