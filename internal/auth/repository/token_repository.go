package repository

import (
	"errors"
	"time"

	authdomain "settlease-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of tokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// Set stores value under key for the user (atomic upsert)
func (r *tokenRepository) Set(userID, key, value string) error {
	token := &authdomain.StoredToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Key:       key,
		Value:     value,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// INSERT ... ON CONFLICT (user_id, key) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(token).Error
}

func (r *tokenRepository) Get(userID, key string) (string, error) {
	var token authdomain.StoredToken
	err := r.db.Where("user_id = ? AND key = ?", userID, key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return token.Value, nil
}

func (r *tokenRepository) Delete(userID, key string) error {
	return r.db.Where("user_id = ? AND key = ?", userID, key).Delete(&authdomain.StoredToken{}).Error
}

func (r *tokenRepository) DeleteAll(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.StoredToken{}).Error
}
