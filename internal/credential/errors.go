package credential

import "errors"

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong
	// signing methods. Callers surface it as a plain 401.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired marks a structurally valid token past its expiry.
	// Distinguished from ErrTokenInvalid for logs and tests only; the HTTP
	// layer reports both identically.
	ErrTokenExpired = errors.New("token expired")
)
