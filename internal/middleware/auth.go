package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/credential"
)

// UserEmailKey is the request-local key holding the authenticated subject.
const UserEmailKey = "user_email"

// BearerAuth validates the Authorization bearer token and stores the subject
// email in request locals. Expired and malformed tokens get the same 401;
// the distinction stays internal.
func BearerAuth(creds *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		subject, err := creds.VerifyToken(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(UserEmailKey, subject)
		return c.Next()
	}
}
