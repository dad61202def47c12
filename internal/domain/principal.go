package domain

import "time"

// Role differentiates the two principal kinds sharing one token scheme.
type Role string

const (
	RoleEndUser Role = "END_USER"
	RoleAdmin   Role = "ADMIN"
)

// User is an end user who files incidents and sees only their own.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Administrator is an operator provisioned out-of-band; there is no
// registration path for administrators.
type Administrator struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the public projection returned after login.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"correo"`
	Role  Role   `json:"role"`
}
