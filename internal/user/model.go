package user

import "time"

// User is an account holder, keyed by email. The stored digest never leaves
// the service layer.
type User struct {
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	AvatarURL      string    `json:"avatar_url"`
	Confirmed      bool      `json:"confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}
