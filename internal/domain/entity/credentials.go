package entity

import "time"

// Credentials par único de acceso (un solo inquilino).
// PasswordHash es bcrypt; Password solo aparece en documentos heredados y se
// reemplaza por el hash al cargarlos.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Password     string `json:"password,omitempty"`
}

// Auth bloque de autenticación dentro del snapshot persistido.
type Auth struct {
	Credentials Credentials `json:"credentials"`
}

// Session sesión activa devuelta por el login. No se persiste.
type Session struct {
	Username string    `json:"username"`
	LoggedAt time.Time `json:"loggedAt"`
	Epoch    int64     `json:"-"`
}
