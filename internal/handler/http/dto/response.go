package dto

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports process and cache health.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
