package dto

import "time"

// TokenRequest is the payload exchanged for a session token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries a signed session token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
