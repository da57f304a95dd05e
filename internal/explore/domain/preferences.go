package domain

import "time"

// TransportationPreference is one way of getting around and how far the user will go with it
type TransportationPreference struct {
	Method   string  `json:"method" yaml:"method"`
	Radius   float64 `json:"radius" yaml:"radius"` // miles
	Selected bool    `json:"selected" yaml:"selected"`
}

// SocialPreference is a named priority the user may care about
type SocialPreference struct {
	Name     string `json:"name" yaml:"name"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// Preferences is the saved preference set a user explores with
type Preferences struct {
	UserID         string                     `json:"user_id" gorm:"primaryKey"`
	AddressParts   []string                   `json:"address_parts" gorm:"serializer:json"`
	Transportation []TransportationPreference `json:"transportation" gorm:"serializer:json"`
	Lifestyle      string                     `json:"lifestyle" gorm:"type:text"`
	AdditionalInfo string                     `json:"additional_info" gorm:"type:text"`
	Social         []SocialPreference         `json:"social" gorm:"serializer:json"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Preferences) TableName() string {
	return "explore_preferences"
}
