package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biocat-api/internal/application/auth"
	"github.com/jhoicas/biocat-api/internal/application/dto"
)

// AuthHandler maneja login, logout y credenciales.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Session GET /api/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s := h.uc.CurrentSession()
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_CLOSED", Message: "no hay sesión activa"})
	}
	return c.JSON(dto.SessionResponse{Username: s.Username, LoggedAt: s.LoggedAt})
}

// UpdateCredentials PUT /api/auth/credentials
func (h *AuthHandler) UpdateCredentials(c *fiber.Ctx) error {
	var in dto.UpdateCredentialsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateCredentials(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
