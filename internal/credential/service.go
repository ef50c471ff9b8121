package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/contact-hub/contact_hub/internal/config"
)

// Service hashes passwords and issues/verifies signed bearer tokens. It is
// pure and stateless: no I/O, no ambient globals, secret and algorithm come
// from the Config handed in at construction.
type Service struct {
	signingKey []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	emailTTL   time.Duration
	now        func() time.Time
}

// NewService builds a credential service from the application config.
func NewService(cfg config.Config) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &Service{
		signingKey: []byte(cfg.JWTSecret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		emailTTL:   cfg.EmailTokenTTL,
		now:        time.Now,
	}, nil
}

// WithClock replaces the time source. For tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// HashPassword derives a one-way bcrypt digest of the plaintext.
func (s *Service) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
func (s *Service) VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// IssueAccessToken signs a short-lived token identifying the subject.
func (s *Service) IssueAccessToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	return s.sign(claims)
}

// IssueEmailToken signs a long-lived token used in verification links.
func (s *Service) IssueEmailToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.emailTTL)),
	}
	return s.sign(claims)
}

func (s *Service) sign(claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the token subject.
// Returns ErrTokenExpired for a stale token, ErrTokenInvalid for anything
// else that fails to verify.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
