package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/user"
)

// RegisterUserRoutes wires avatar updates and profile lookup.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	r.Patch("/avatar/:email", h.UpdateAvatar)
	r.Get("/me/:email", h.Me)
}
