package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse sesión activa.
type SessionResponse struct {
	Username string    `json:"username"`
	LoggedAt time.Time `json:"loggedAt"`
}

// LoginResponse token JWT y sesión.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// UpdateCredentialsRequest cambio de usuario y/o contraseña. Los campos vacíos
// conservan el valor actual; CurrentPassword debe coincidir con la contraseña vigente.
type UpdateCredentialsRequest struct {
	Username        string `json:"username" validate:"max=100"`
	Password        string `json:"password" validate:"max=200"`
	CurrentPassword string `json:"currentPassword"`
}

// CredentialsResponse salida sin contraseña.
type CredentialsResponse struct {
	Username string `json:"username"`
}
