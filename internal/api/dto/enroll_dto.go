package dto

import "time"

// EnrollRequest payload for token issuance.
type EnrollRequest struct {
	Role     string `json:"role"`
	CallerID string `json:"caller_id"`
	Secret   string `json:"secret"`
}

// AuthResponse standard response for enrollment.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
