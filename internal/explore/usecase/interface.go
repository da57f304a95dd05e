package usecase

import (
	"context"
	"errors"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ExploreUsecase defines the interface for explore business logic
type ExploreUsecase interface {
	// Explore returns recommendations for the user's saved preferences.
	// Failures of the generation service yield an empty list, not an error.
	Explore(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error)

	// ExploreStrict is Explore with generation failures reported
	ExploreStrict(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error)

	// ExploreBatch explores several categories at once
	ExploreBatch(ctx context.Context, user *authdomain.User, categories []domain.Category) ([]CategoryResult, error)

	// GetPreferences returns the saved preferences, or an empty set when none were saved
	GetPreferences(userID string) (*domain.Preferences, error)
	SavePreferences(userID string, prefs *domain.Preferences) (*domain.Preferences, error)

	ListFavorites(userID string) ([]*domain.Favorite, error)
	AddFavorite(userID string, card domain.RecommendationCard) (*domain.Favorite, error)
	RemoveFavorite(userID, favoriteID string) error
}
