package dto

// ErrorResponse cuerpo de error HTTP: {error, details?}.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse confirmación simple (ej. DELETE).
type MessageResponse struct {
	Message string `json:"message"`
}
