package delivery

import (
	"errors"
	"net/http"

	authdelivery "settlease-backend/internal/auth/delivery"
	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
	"settlease-backend/internal/explore/usecase"

	"github.com/gin-gonic/gin"
)

// ExploreHandler handles recommendation, preference and favorite requests
type ExploreHandler struct {
	exploreUsecase usecase.ExploreUsecase
}

// NewExploreHandler creates a new ExploreHandler
func NewExploreHandler(exploreUsecase usecase.ExploreUsecase) *ExploreHandler {
	return &ExploreHandler{exploreUsecase: exploreUsecase}
}

// ExploreRequest is the body of the single-category explore endpoints
type ExploreRequest struct {
	Category      domain.Category `json:"category" binding:"required"`
	CategoryTitle string          `json:"category_title"`
}

// BatchRequest is the body of the batch explore endpoint
type BatchRequest struct {
	Categories []domain.Category `json:"categories" binding:"required,min=1,dive"`
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return user, true
}

// Explore returns recommendation cards, an empty list when generation fails
// POST /api/explore
func (h *ExploreHandler) Explore(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards, err := h.exploreUsecase.Explore(c.Request.Context(), user, req.Category, req.CategoryTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cards)
}

// ExploreStrict returns recommendation cards or the generation failure
// POST /api/explore/strict
func (h *ExploreHandler) ExploreStrict(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards, err := h.exploreUsecase.ExploreStrict(c.Request.Context(), user, req.Category, req.CategoryTitle)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUpstreamStatus),
			errors.Is(err, usecase.ErrTransport),
			errors.Is(err, usecase.ErrMalformedResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, cards)
}

// ExploreBatch explores several categories in one call
// POST /api/explore/batch
func (h *ExploreHandler) ExploreBatch(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.exploreUsecase.ExploreBatch(c.Request.Context(), user, req.Categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetPreferences returns the user's saved preferences
// GET /api/explore/preferences
func (h *ExploreHandler) GetPreferences(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	prefs, err := h.exploreUsecase.GetPreferences(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// SavePreferences replaces the user's saved preferences
// PUT /api/explore/preferences
func (h *ExploreHandler) SavePreferences(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.exploreUsecase.SavePreferences(user.ID, &prefs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// ListFavorites returns the user's favorite places
// GET /api/explore/favorites
func (h *ExploreHandler) ListFavorites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	favs, err := h.exploreUsecase.ListFavorites(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, favs)
}

// AddFavorite saves a recommendation card
// POST /api/explore/favorites
func (h *ExploreHandler) AddFavorite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var card domain.RecommendationCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if card.Title == "" && card.Place == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title or place is required"})
		return
	}

	fav, err := h.exploreUsecase.AddFavorite(user.ID, card)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fav)
}

// RemoveFavorite deletes a favorite
// DELETE /api/explore/favorites/:id
func (h *ExploreHandler) RemoveFavorite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.exploreUsecase.RemoveFavorite(user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFavoriteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		case errors.Is(err, usecase.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}
