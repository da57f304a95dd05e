package repository

import (
	"time"

	authdomain "settlease-backend/internal/auth/domain"
)

// UserRepository defines the interface for users and their refresh tokens
type UserRepository interface {
	FindByID(id string) (*authdomain.User, error)

	// Upsert creates the user or refreshes its identity fields, keeping profile attributes
	Upsert(user *authdomain.User) error
	Update(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error

	// DeleteExpiredRefreshTokens removes every token that expired before the given time
	DeleteExpiredRefreshTokens(before time.Time) (int64, error)
}

// TokenRepository is a per-user key-value store of string tokens
type TokenRepository interface {
	Set(userID, key, value string) error

	// Get returns "" when the key is not set
	Get(userID, key string) (string, error)
	Delete(userID, key string) error
	DeleteAll(userID string) error
}
