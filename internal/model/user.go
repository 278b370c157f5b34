package model

import "time"

// Role is the closed set of account roles.  Owners register and
// manage courts; players reserve time slots on them.  A role is
// fixed at registration and never changes afterwards.
type Role string

const (
	RoleOwner  Role = "owner"
	RolePlayer Role = "player"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RolePlayer
}

// User represents an application account as stored in the `users`
// table.  Emails are stored lowercased and are unique.  The
// password is kept only as a bcrypt hash; the plaintext is never
// persisted or logged.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique, case-insensitive email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name used in owner-side listings.
//  Role         – owner or player, immutable after creation.
//  CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.fullname
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
}
