package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/credential"
)

// Handler exposes auth and user endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	token, err := h.service.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusCreated).JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	token, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusCreated).JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// VerifyEmail handles GET /auth/verify/:token.
func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	u, err := h.service.VerifyEmail(c.UserContext(), c.Params("token"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"message": "Email verified", "user": u.Email})
}

// UpdateAvatar handles PATCH /users/avatar/:email with a multipart file.
func (h *Handler) UpdateAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable avatar file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	u, err := h.service.UpdateAvatar(c.UserContext(), c.Params("email"), contentType, file)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(u)
}

// Me handles GET /users/me/:email.
func (h *Handler) Me(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), c.Params("email"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"user": u.Email})
}

// toHTTPError maps service errors to status codes. Token failures collapse
// into one 401 body; driver errors stay behind a generic 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return fiber.NewError(http.StatusConflict, "email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, credential.ErrTokenInvalid), errors.Is(err, credential.ErrTokenExpired):
		return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "user not found")
	case errors.Is(err, ErrInvalid):
		return fiber.NewError(http.StatusUnprocessableEntity, "invalid user data")
	default:
		return fiber.NewError(http.StatusInternalServerError, "internal error")
	}
}
