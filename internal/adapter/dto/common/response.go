package common

// StatusResponse is the {"status", "message"} acknowledgement most write endpoints return
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is returned by the service root
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status      string            `json:"status"`
	Environment string            `json:"environment,omitempty"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// Success builds a "success" StatusResponse
func Success(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}
