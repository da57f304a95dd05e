package domain

import "time"

// AccessTokenKey is the token store key for the user's Google OAuth access token
const AccessTokenKey = "accessToken"

// StoredToken is one key-value string entry of a user's token store
type StoredToken struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_user_token_key;not null"`
	Key       string    `json:"key" gorm:"uniqueIndex:idx_user_token_key;not null"`
	Value     string    `json:"-" gorm:"type:text"` // Don't expose token in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
