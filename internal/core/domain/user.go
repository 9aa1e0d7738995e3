package domain

import (
	"regexp"
	"time"
)

// emailPattern mirrors the format enforced on the users collection.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// User models an account in the system. PasswordHash is never serialized to
// clients. IsAdmin is the sole authority for admin checks; the seeded admin
// account is the only path to the flag.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidEmail reports whether s is an acceptable email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
