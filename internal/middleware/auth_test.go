package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contact-hub/contact_hub/internal/config"
	"github.com/contact-hub/contact_hub/internal/credential"
)

func setupAuthedApp(t *testing.T) (*fiber.App, *credential.Service) {
	t.Helper()
	creds, err := credential.NewService(config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTAlgorithm:  "HS256",
		AccessTTL:     30 * time.Minute,
		EmailTokenTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("credential service: %v", err)
	}

	app := fiber.New()
	app.Get("/protected", BearerAuth(creds), func(c *fiber.Ctx) error {
		email, _ := c.Locals(UserEmailKey).(string)
		return c.JSON(fiber.Map{"email": email})
	})
	return app, creds
}

func TestBearerAuthRejectsMissingHeader(t *testing.T) {
	app, _ := setupAuthedApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBearerAuthRejectsGarbageToken(t *testing.T) {
	app, _ := setupAuthedApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBearerAuthAcceptsValidToken(t *testing.T) {
	app, creds := setupAuthedApp(t)

	token, err := creds.IssueAccessToken("reese@meta.ua")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
