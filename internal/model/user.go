package model

// User represents an application user record as stored in the
// `users` table. Passwords are never stored in plain text; only the
// bcrypt hash (which embeds its own salt and cost) is persisted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – authorization role, defaults to "user".
type User struct {
	ID           uint64 // users.id
	Username     string // users.username
	PasswordHash string // users.password_hash
	Role         string // users.role
}

// RoleUser is the default role assigned at registration.
const RoleUser = "user"
