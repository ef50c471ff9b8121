package contact

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes contact endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a contact HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /contacts/.
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	created, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// List handles GET /contacts/ with optional skip/limit pagination.
func (h *Handler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	contacts, err := h.service.List(c.UserContext(), skip, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(contacts)
}

// Get handles GET /contacts/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	found, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(found)
}

// Update handles PUT /contacts/:id with a partial body.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var u Update
	if err := c.BodyParser(&u); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	updated, err := h.service.Update(c.UserContext(), id, u)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(updated)
}

// Delete handles DELETE /contacts/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}
	if !deleted {
		return fiber.NewError(http.StatusNotFound, "contact not found")
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}

// Search handles GET /contacts/search/?query=...
func (h *Handler) Search(c *fiber.Ctx) error {
	matches, err := h.service.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(matches)
}

// Birthdays handles GET /contacts/birthdays/.
func (h *Handler) Birthdays(c *fiber.Ctx) error {
	upcoming, err := h.service.UpcomingBirthdays(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(upcoming)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusNotFound, "contact not found")
	}
	return id, nil
}

// toHTTPError maps service errors to status codes without leaking driver
// detail to the client.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "contact not found")
	case errors.Is(err, ErrInvalid):
		return fiber.NewError(http.StatusUnprocessableEntity, "invalid contact data")
	default:
		return fiber.NewError(http.StatusInternalServerError, "internal error")
	}
}
