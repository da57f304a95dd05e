package usecase

import (
	"context"
	"errors"

	authdomain "settlease-backend/internal/auth/domain"
	authdto "settlease-backend/internal/auth/dto"
	"settlease-backend/internal/auth/session"
	"settlease-backend/pkg/firebase"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrUserNotFound        = errors.New("user not found")
)

// IdentityVerifier checks an identity provider ID token
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, idToken string) (*firebase.Identity, error)
}

// AuthUsecase defines the interface for sign-in, tokens and the user's profile
type AuthUsecase interface {
	// FirebaseSignIn verifies the ID token, upserts the user and issues tokens
	FirebaseSignIn(ctx context.Context, req *authdto.FirebaseSignInRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)

	// Logout drops the refresh token and the stored access token, and ends the session
	Logout(userID, refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	SessionState(userID string) session.Snapshot

	// AccessToken returns the user's stored Google access token, "" if none
	AccessToken(userID string) (string, error)
}
