package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "ContactHub"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultAccessTTL      = 30 * time.Minute
	defaultEmailTokenTTL  = 7 * 24 * time.Hour
	defaultJWTAlgorithm   = "HS256"
	defaultRateLimit      = 5
	minJWTSecretLen       = 32
	shutdownSecondsEnvVar = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurEnvVar     = "SHUTDOWN_TIMEOUT"
)

// defaultRateLimitRoutes names the route keys the limiter covers when
// RATE_LIMIT_ROUTES is unset. One table instead of per-route annotations.
var defaultRateLimitRoutes = []string{
	"contacts.create",
	"contacts.list",
	"contacts.get",
	"contacts.update",
	"contacts.delete",
	"contacts.search",
	"contacts.birthdays",
}

// Config captures application runtime configuration loaded from environment
// variables. The signing secret and algorithm live here and are handed to the
// credential service at construction; nothing reads them from globals.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	PublicBaseURL  string
	CORSOrigins    string
	ShutdownPeriod time.Duration

	JWTSecret     string
	JWTAlgorithm  string
	AccessTTL     time.Duration
	EmailTokenTTL time.Duration

	RateLimitPerMinute int
	RateLimitRoutes    []string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
}

// Load reads configuration values from the environment and populates a Config
// instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		PublicBaseURL:      strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		ShutdownPeriod:     defaultShutdownDelay,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", defaultJWTAlgorithm),
		AccessTTL:          defaultAccessTTL,
		EmailTokenTTL:      defaultEmailTokenTTL,
		RateLimitPerMinute: defaultRateLimit,
		RateLimitRoutes:    defaultRateLimitRoutes,
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Bucket:           getEnv("S3_BUCKET", "avatars"),
		S3AccessKey:        os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:        os.Getenv("S3_SECRET_KEY"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		MailFrom:           getEnv("MAIL_FROM", "no-reply@contacthub.local"),
		MailFromName:       getEnv("MAIL_FROM_NAME", defaultAppName),
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("EMAIL_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EMAIL_TOKEN_TTL: %w", err)
		}
		cfg.EmailTokenTTL = d
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", v)
		}
		cfg.RateLimitPerMinute = n
	}

	if v := os.Getenv("RATE_LIMIT_ROUTES"); v != "" {
		cfg.RateLimitRoutes = splitList(v)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}

	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development-style environment where
// external backends may be absent.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// RateLimited reports whether the named route key is covered by the limiter.
func (c Config) RateLimited(route string) bool {
	for _, r := range c.RateLimitRoutes {
		if r == route {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
