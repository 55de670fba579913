// Package models holds the persistent entities shared by repositories and
// services on the server side.
package models

// Account roles. Self-registered accounts are always guests; admin accounts
// exist only through startup seeding.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Account is a registered user. The password is stored only as a bcrypt hash.
// Accounts are immutable after creation: no exposed operation updates or
// deletes them.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}
