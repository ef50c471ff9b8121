package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/contact-hub/contact_hub/internal/avatar"
	"github.com/contact-hub/contact_hub/internal/credential"
	"github.com/contact-hub/contact_hub/internal/notification"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords,
	// deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalid marks registration input rejected by validation.
	ErrInvalid = errors.New("invalid user data")
)

// Service manages account lifecycle: registration, login, email
// verification and avatar updates.
type Service struct {
	repo     Repository
	creds    *credential.Service
	notifier notification.Notifier
	avatars  avatar.Store
	baseURL  string
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds a user service instance.
func NewService(repo Repository, creds *credential.Service, notifier notification.Notifier,
	avatars avatar.Store, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		creds:    creds,
		notifier: notifier,
		avatars:  avatars,
		baseURL:  baseURL,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates an account and returns a fresh access token. The user row
// commits first; the verification email is a best-effort notification whose
// failure is logged and dropped, never surfaced as a registration error.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: malformed email", ErrInvalid)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalid)
	}

	digest, err := s.creds.HashPassword(password)
	if err != nil {
		return "", err
	}

	if err := s.repo.Create(ctx, User{
		Email:          email,
		HashedPassword: digest,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return "", err
	}

	s.sendVerificationEmail(ctx, email)

	return s.creds.IssueAccessToken(email)
}

// Login verifies credentials and returns an access token. Unknown email and
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.creds.VerifyPassword(password, u.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	return s.creds.IssueAccessToken(email)
}

// VerifyEmail consumes a verification-link token and marks the account
// confirmed.
func (s *Service) VerifyEmail(ctx context.Context, token string) (User, error) {
	email, err := s.creds.VerifyToken(token)
	if err != nil {
		return User{}, err
	}
	return s.repo.Confirm(ctx, email)
}

// Get fetches a user by email.
func (s *Service) Get(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdateAvatar uploads the image to the avatar host and persists the
// returned URL. The user lookup runs first so an unknown email never
// triggers an upload.
func (s *Service) UpdateAvatar(ctx context.Context, email, contentType string, image io.Reader) (User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return User{}, err
	}

	key := fmt.Sprintf("avatars/%s/%s", email, uuid.NewString())
	url, err := s.avatars.Upload(ctx, key, contentType, image)
	if err != nil {
		return User{}, fmt.Errorf("upload avatar: %w", err)
	}

	return s.repo.UpdateAvatar(ctx, email, url)
}

func (s *Service) sendVerificationEmail(ctx context.Context, email string) {
	token, err := s.creds.IssueEmailToken(email)
	if err != nil {
		s.logger.Error("issue verification token", "email", email, "error", err)
		return
	}
	link := fmt.Sprintf("%s/auth/verify/%s", s.baseURL, token)
	err = s.notifier.Send(ctx, notification.Message{
		Kind:    notification.KindEmailVerification,
		To:      email,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Follow the link to verify your address: %s", link),
	})
	if err != nil {
		s.logger.Warn("verification email not sent", "email", email, "error", err)
	}
}
