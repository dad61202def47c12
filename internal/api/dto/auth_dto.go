package dto

import "github.com/helpdesk-labs/incident-service/internal/domain"

// RegisterRequest payload for new end users.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Password string `json:"contraseña"`
}

// LoginRequest payload for either principal kind.
type LoginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contraseña"`
}

// RegisterResponse returned after a successful registration.
type RegisterResponse struct {
	Message string         `json:"mensaje"`
	User    domain.Profile `json:"usuario"`
	Token   string         `json:"token"`
}

// LoginResponse returned after a successful login.
type LoginResponse struct {
	Message string         `json:"mensaje"`
	Token   string         `json:"token"`
	Profile domain.Profile `json:"perfil"`
}
