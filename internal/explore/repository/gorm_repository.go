package repository

import (
	"errors"
	"time"

	"settlease-backend/internal/explore/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormPreferenceRepository struct {
	db *gorm.DB
}

// NewGormPreferenceRepository creates a new GORM-based PreferenceRepository
func NewGormPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &gormPreferenceRepository{db: db}
}

func (r *gormPreferenceRepository) FindByUserID(userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *gormPreferenceRepository) Save(prefs *domain.Preferences) error {
	prefs.UpdatedAt = time.Now()
	return r.db.Save(prefs).Error
}

type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM-based FavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

func (r *gormFavoriteRepository) Create(fav *domain.Favorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	return r.db.Create(fav).Error
}

func (r *gormFavoriteRepository) FindByID(id string) (*domain.Favorite, error) {
	var fav domain.Favorite
	err := r.db.Where("id = ?", id).First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

func (r *gormFavoriteRepository) FindByUserID(userID string) ([]*domain.Favorite, error) {
	var favs []*domain.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favs).Error
	return favs, err
}

func (r *gormFavoriteRepository) Delete(id string) error {
	return r.db.Delete(&domain.Favorite{}, "id = ?", id).Error
}
