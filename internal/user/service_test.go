package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/contact-hub/contact_hub/internal/avatar"
	"github.com/contact-hub/contact_hub/internal/config"
	"github.com/contact-hub/contact_hub/internal/credential"
	"github.com/contact-hub/contact_hub/internal/logging"
	"github.com/contact-hub/contact_hub/internal/notification"
)

type recordingNotifier struct {
	sent []notification.Message
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, m notification.Message) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, m)
	return nil
}

func newTestService(t *testing.T, notifier notification.Notifier) (*Service, Repository, *avatar.MemoryStore) {
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
	repo := NewMemoryRepository()
	avatars := avatar.NewMemoryStore()
	svc := NewService(repo, creds, notifier, avatars, "http://localhost:8080", logging.Discard())
	return svc, repo, avatars
}

func TestRegisterIssuesTokenAndSendsVerification(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, repo, _ := newTestService(t, notifier)
	ctx := context.Background()

	token, err := svc.Register(ctx, "reese@meta.ua", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected access token")
	}

	stored, err := repo.FindByEmail(ctx, "reese@meta.ua")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.HashedPassword == "s3cret" || stored.HashedPassword == "" {
		t.Fatal("password must be stored as a digest")
	}
	if stored.Confirmed {
		t.Fatal("new account must start unconfirmed")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one verification email, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.Kind != notification.KindEmailVerification || msg.To != "reese@meta.ua" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg.Body, "/auth/verify/") {
		t.Fatalf("expected verification link in body, got %q", msg.Body)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "first"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "dup@example.com", "second"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc, repo, _ := newTestService(t, notifier)
	ctx := context.Background()

	token, err := svc.Register(ctx, "reese@meta.ua", "s3cret")
	if err != nil {
		t.Fatalf("register must not fail on notifier error: %v", err)
	}
	if token == "" {
		t.Fatal("expected access token despite failed send")
	}
	if _, err := repo.FindByEmail(ctx, "reese@meta.ua"); err != nil {
		t.Fatalf("user row must exist: %v", err)
	}
}

func TestLoginUniformRejection(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "known@example.com", "right-pass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "known@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "unknown@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	token, err := svc.Login(ctx, "known@example.com", "right-pass")
	if err != nil || token == "" {
		t.Fatalf("expected successful login, got %q %v", token, err)
	}
}

func TestVerifyEmailConfirmsAccount(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _, _ := newTestService(t, notifier)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "reese@meta.ua", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	body := notifier.sent[0].Body
	token := body[strings.LastIndex(body, "/")+1:]

	confirmed, err := svc.VerifyEmail(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !confirmed.Confirmed {
		t.Fatal("expected account to be confirmed")
	}

	if _, err := svc.VerifyEmail(ctx, "bogus-token"); !errors.Is(err, credential.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	svc, repo, avatars := newTestService(t, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "reese@meta.ua", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateAvatar(ctx, "reese@meta.ua", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if updated.AvatarURL == "" {
		t.Fatal("expected avatar url to be set")
	}

	stored, err := repo.FindByEmail(ctx, "reese@meta.ua")
	if err != nil || stored.AvatarURL != updated.AvatarURL {
		t.Fatalf("avatar url not persisted: %+v %v", stored, err)
	}
	if avatars.Len() != 1 {
		t.Fatalf("expected one uploaded object, got %d", avatars.Len())
	}
}

func TestUpdateAvatarUnknownEmailSkipsUpload(t *testing.T) {
	svc, _, avatars := newTestService(t, &recordingNotifier{})

	_, err := svc.UpdateAvatar(context.Background(), "ghost@example.com", "image/png", strings.NewReader("png-bytes"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if avatars.Len() != 0 {
		t.Fatal("unknown email must not trigger an upload")
	}
}
