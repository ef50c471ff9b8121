package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/contact"
)

// RegisterContactRoutes wires the contact CRUD, search and birthday
// endpoints. Static paths register before /:id so "search" and "birthdays"
// are never captured as ids.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler, limited func(route string) fiber.Handler) {
	r.Post("/", withLimit(limited("contacts.create"), h.Create)...)
	r.Get("/", withLimit(limited("contacts.list"), h.List)...)
	r.Get("/search/", withLimit(limited("contacts.search"), h.Search)...)
	r.Get("/birthdays/", withLimit(limited("contacts.birthdays"), h.Birthdays)...)
	r.Get("/:id", withLimit(limited("contacts.get"), h.Get)...)
	r.Put("/:id", withLimit(limited("contacts.update"), h.Update)...)
	r.Delete("/:id", withLimit(limited("contacts.delete"), h.Delete)...)
}
