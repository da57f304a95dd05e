package repository

import "settlease-backend/internal/explore/domain"

// PreferenceRepository defines the interface for saved explore preferences
type PreferenceRepository interface {
	// FindByUserID returns nil, nil when the user has saved nothing yet
	FindByUserID(userID string) (*domain.Preferences, error)

	// Save creates or replaces the user's preferences
	Save(prefs *domain.Preferences) error
}

// FavoriteRepository defines the interface for favorited recommendation cards
type FavoriteRepository interface {
	Create(fav *domain.Favorite) error
	FindByID(id string) (*domain.Favorite, error)

	// FindByUserID lists a user's favorites, newest first
	FindByUserID(userID string) ([]*domain.Favorite, error)
	Delete(id string) error
}
