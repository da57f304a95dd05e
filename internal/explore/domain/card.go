package domain

import "time"

// RecommendationCard is one place recommended by the generation service
type RecommendationCard struct {
	Title               string  `json:"title"`
	Place               string  `json:"place"`
	Address             string  `json:"address"`
	PersonalizedSummary string  `json:"personalized_summary" gorm:"type:text"`
	Reasoning           string  `json:"reasoning" gorm:"type:text"`
	Confidence          float64 `json:"confidence"`
	Category            string  `json:"category"`
}

// Favorite is a recommendation card the user saved
type Favorite struct {
	ID                 string `json:"id" gorm:"primaryKey"`
	UserID             string `json:"user_id" gorm:"index;not null"`
	RecommendationCard `gorm:"embedded"`
	CreatedAt          time.Time `json:"created_at"`
}
