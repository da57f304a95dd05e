package usecase

import (
	"context"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
	"settlease-backend/internal/explore/repository"
)

// exploreUsecase implements ExploreUsecase interface
type exploreUsecase struct {
	requester   *Requester
	prefsRepo   repository.PreferenceRepository
	favRepo     repository.FavoriteRepository
	concurrency int
}

// NewExploreUsecase creates a new instance of exploreUsecase
func NewExploreUsecase(
	requester *Requester,
	prefsRepo repository.PreferenceRepository,
	favRepo repository.FavoriteRepository,
	concurrency int,
) ExploreUsecase {
	return &exploreUsecase{
		requester:   requester,
		prefsRepo:   prefsRepo,
		favRepo:     favRepo,
		concurrency: concurrency,
	}
}

func (u *exploreUsecase) inputFor(user *authdomain.User, category domain.Category, categoryTitle string) (ExploreInput, error) {
	prefs, err := u.GetPreferences(user.ID)
	if err != nil {
		return ExploreInput{}, err
	}
	return ExploreInput{
		User:                      user,
		AddressParts:              prefs.AddressParts,
		TransportationPreferences: prefs.Transportation,
		LifestylePreferences:      prefs.Lifestyle,
		AdditionalInfo:            prefs.AdditionalInfo,
		SocialPreferences:         prefs.Social,
		Category:                  category,
		CategoryTitle:             categoryTitle,
	}, nil
}

func (u *exploreUsecase) Explore(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error) {
	in, err := u.inputFor(user, category, categoryTitle)
	if err != nil {
		return nil, err
	}
	return u.requester.GenerateRecommendations(ctx, in), nil
}

func (u *exploreUsecase) ExploreStrict(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error) {
	in, err := u.inputFor(user, category, categoryTitle)
	if err != nil {
		return nil, err
	}
	return u.requester.RequestRecommendations(ctx, in)
}

func (u *exploreUsecase) ExploreBatch(ctx context.Context, user *authdomain.User, categories []domain.Category) ([]CategoryResult, error) {
	base, err := u.inputFor(user, domain.Category{}, "")
	if err != nil {
		return nil, err
	}
	return u.requester.ExploreCategories(ctx, base, categories, u.concurrency), nil
}

func (u *exploreUsecase) GetPreferences(userID string) (*domain.Preferences, error) {
	prefs, err := u.prefsRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &domain.Preferences{UserID: userID}, nil
	}
	return prefs, nil
}

func (u *exploreUsecase) SavePreferences(userID string, prefs *domain.Preferences) (*domain.Preferences, error) {
	prefs.UserID = userID
	if err := u.prefsRepo.Save(prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (u *exploreUsecase) ListFavorites(userID string) ([]*domain.Favorite, error) {
	favs, err := u.favRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []*domain.Favorite{}
	}
	return favs, nil
}

func (u *exploreUsecase) AddFavorite(userID string, card domain.RecommendationCard) (*domain.Favorite, error) {
	fav := &domain.Favorite{
		UserID:             userID,
		RecommendationCard: card,
	}
	if err := u.favRepo.Create(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (u *exploreUsecase) RemoveFavorite(userID, favoriteID string) error {
	fav, err := u.favRepo.FindByID(favoriteID)
	if err != nil {
		return err
	}
	if fav == nil {
		return ErrFavoriteNotFound
	}
	if fav.UserID != userID {
		return ErrUnauthorized
	}
	return u.favRepo.Delete(fav.ID)
}
