package domain

import "time"

// User is the signed-in user's profile.
// Identity fields come from the identity provider; the address, birthday and gender
// attributes are filled in by the user and start empty.
type User struct {
	ID          string     `json:"id" gorm:"primaryKey"` // identity provider uid
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"index"`
	PhotoURL    string     `json:"photo_url"`
	HomeAddress string     `json:"home_address"`
	WorkAddress string     `json:"work_address"`
	Birthday    *time.Time `json:"birthday" gorm:"type:date"`
	Gender      string     `json:"gender"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   time.Time  `json:"last_login"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
