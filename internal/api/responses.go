// Package api holds the response envelopes and binding helpers shared by
// every handler package.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"member not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Member deactivated"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
