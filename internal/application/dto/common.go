package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva un mensaje por línea cuando una orden no puede completarse.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}
