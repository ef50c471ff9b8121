package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/contact-hub/contact_hub/internal/avatar"
	"github.com/contact-hub/contact_hub/internal/config"
	"github.com/contact-hub/contact_hub/internal/contact"
	"github.com/contact-hub/contact_hub/internal/credential"
	"github.com/contact-hub/contact_hub/internal/middleware"
	"github.com/contact-hub/contact_hub/internal/notification"
	"github.com/contact-hub/contact_hub/internal/user"
)

// Deps aggregates shared dependencies required to wire routes. Notifier and
// Avatars may be pre-set (tests do); otherwise Setup picks implementations
// from the config.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Logger   *slog.Logger
	Notifier notification.Notifier
	Avatars  avatar.Store
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{AllowOrigins: d.Cfg.CORSOrigins}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	creds, err := credential.NewService(d.Cfg)
	if err != nil {
		return err
	}

	var contactRepo contact.Repository
	var userRepo user.Repository
	if d.DB != nil {
		contactRepo = contact.NewPostgresRepository(d.DB)
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		contactRepo = contact.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
	}

	notifier := d.Notifier
	if notifier == nil {
		if d.Cfg.SendGridAPIKey != "" {
			notifier = notification.NewSendGridNotifier(d.Cfg.SendGridAPIKey, d.Cfg.MailFrom, d.Cfg.MailFromName)
		} else {
			notifier = notification.NewLoggerNotifier(d.Logger)
		}
	}

	avatars := d.Avatars
	if avatars == nil {
		if d.Cfg.S3Endpoint != "" {
			avatars, err = avatar.NewS3Store(context.Background(), d.Cfg)
			if err != nil {
				return err
			}
		} else {
			avatars = avatar.NewMemoryStore()
		}
	}

	contactHandler := contact.NewHandler(contact.NewService(contactRepo))
	userSvc := user.NewService(userRepo, creds, notifier, avatars, d.Cfg.PublicBaseURL, d.Logger)
	userHandler := user.NewHandler(userSvc)

	// limited resolves a route key against the rate-limit table; nil means
	// the route is not limited.
	limited := func(route string) fiber.Handler {
		if !d.Cfg.RateLimited(route) {
			return nil
		}
		return middleware.RateLimit(d.Cache, route, d.Cfg.RateLimitPerMinute)
	}

	// Public routes
	RegisterAuthRoutes(app, userHandler)

	// Protected routes: one uniform capability check across all contact and
	// user endpoints.
	authed := middleware.BearerAuth(creds)
	RegisterContactRoutes(app.Group("/contacts", authed), contactHandler, limited)
	RegisterUserRoutes(app.Group("/users", authed), userHandler)

	return nil
}

// withLimit prepends the limiter when the route is covered by the table.
func withLimit(limit fiber.Handler, h fiber.Handler) []fiber.Handler {
	if limit == nil {
		return []fiber.Handler{h}
	}
	return []fiber.Handler{limit, h}
}
