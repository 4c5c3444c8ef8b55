package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type ChangeCredentialsRequest struct {
	Username        string `json:"username"        validate:"max=150"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}
