package dto

import (
	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/auth/session"
)

type FirebaseSignInRequest struct {
	IDToken     string `json:"id_token" binding:"required"`
	AccessToken string `json:"access_token"` // Google OAuth token, kept for Drive access
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest carries the profile attributes to change; nil fields are left alone
type UpdateProfileRequest struct {
	HomeAddress *string `json:"home_address"`
	WorkAddress *string `json:"work_address"`
	Birthday    *string `json:"birthday"` // "" clears it
	Gender      *string `json:"gender"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
	Session      session.Snapshot `json:"session"`
}

// ProfileResponse is a user with the human-readable birthday line
type ProfileResponse struct {
	*authdomain.User
	BirthdayText string `json:"birthday_text"`
}
