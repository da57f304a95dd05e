package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
	"settlease-backend/internal/explore/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExploreUsecase struct {
	cards     []domain.RecommendationCard
	strictErr error
	removeErr error

	gotCategory domain.Category
	gotTitle    string
	gotUserID   string
}

func (f *fakeExploreUsecase) Explore(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error) {
	f.gotUserID, f.gotCategory, f.gotTitle = user.ID, category, categoryTitle
	return f.cards, nil
}

func (f *fakeExploreUsecase) ExploreStrict(ctx context.Context, user *authdomain.User, category domain.Category, categoryTitle string) ([]domain.RecommendationCard, error) {
	if f.strictErr != nil {
		return nil, f.strictErr
	}
	return f.cards, nil
}

func (f *fakeExploreUsecase) ExploreBatch(ctx context.Context, user *authdomain.User, categories []domain.Category) ([]usecase.CategoryResult, error) {
	results := make([]usecase.CategoryResult, len(categories))
	for i, c := range categories {
		results[i] = usecase.CategoryResult{Category: c.Title, Cards: f.cards}
	}
	return results, nil
}

func (f *fakeExploreUsecase) GetPreferences(userID string) (*domain.Preferences, error) {
	return &domain.Preferences{UserID: userID, Lifestyle: "yoga"}, nil
}

func (f *fakeExploreUsecase) SavePreferences(userID string, prefs *domain.Preferences) (*domain.Preferences, error) {
	prefs.UserID = userID
	return prefs, nil
}

func (f *fakeExploreUsecase) ListFavorites(userID string) ([]*domain.Favorite, error) {
	return []*domain.Favorite{}, nil
}

func (f *fakeExploreUsecase) AddFavorite(userID string, card domain.RecommendationCard) (*domain.Favorite, error) {
	return &domain.Favorite{ID: "fav-1", UserID: userID, RecommendationCard: card}, nil
}

func (f *fakeExploreUsecase) RemoveFavorite(userID, favoriteID string) error {
	return f.removeErr
}

func setupRouter(uc usecase.ExploreUsecase, signedIn bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if signedIn {
		r.Use(func(c *gin.Context) {
			c.Set("user", &authdomain.User{ID: "uid-1"})
			c.Next()
		})
	}
	h := NewExploreHandler(uc)
	r.POST("/api/explore", h.Explore)
	r.POST("/api/explore/strict", h.ExploreStrict)
	r.POST("/api/explore/batch", h.ExploreBatch)
	r.GET("/api/explore/preferences", h.GetPreferences)
	r.PUT("/api/explore/preferences", h.SavePreferences)
	r.POST("/api/explore/favorites", h.AddFavorite)
	r.DELETE("/api/explore/favorites/:id", h.RemoveFavorite)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExplore(t *testing.T) {
	uc := &fakeExploreUsecase{cards: []domain.RecommendationCard{{Title: "Iron Temple", Category: "Gyms"}}}
	r := setupRouter(uc, true)

	w := doJSON(r, http.MethodPost, "/api/explore",
		`{"category":{"title":"Gyms","cost_preference":"moderate"},"category_title":"Boxing gyms"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var cards []domain.RecommendationCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Equal(t, uc.cards, cards)
	assert.Equal(t, "uid-1", uc.gotUserID)
	assert.Equal(t, "moderate", uc.gotCategory.CostPreference)
	assert.Equal(t, "Boxing gyms", uc.gotTitle)
}

func TestExplore_EmptyArrayNotNull(t *testing.T) {
	r := setupRouter(&fakeExploreUsecase{cards: []domain.RecommendationCard{}}, true)

	w := doJSON(r, http.MethodPost, "/api/explore", `{"category":{"title":"Gyms"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestExplore_Validation(t *testing.T) {
	r := setupRouter(&fakeExploreUsecase{}, true)

	w := doJSON(r, http.MethodPost, "/api/explore", `{"category":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/explore/batch", `{"categories":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExplore_RequiresUser(t *testing.T) {
	r := setupRouter(&fakeExploreUsecase{}, false)

	w := doJSON(r, http.MethodPost, "/api/explore", `{"category":{"title":"Gyms"}}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExploreStrict_UpstreamFailure(t *testing.T) {
	uc := &fakeExploreUsecase{strictErr: fmt.Errorf("%w: 500 Internal Server Error", usecase.ErrUpstreamStatus)}
	r := setupRouter(uc, true)

	w := doJSON(r, http.MethodPost, "/api/explore/strict", `{"category":{"title":"Gyms"}}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "500 Internal Server Error")
}

func TestExploreBatch(t *testing.T) {
	uc := &fakeExploreUsecase{cards: []domain.RecommendationCard{}}
	r := setupRouter(uc, true)

	w := doJSON(r, http.MethodPost, "/api/explore/batch", `{"categories":[{"title":"Gyms"},{"title":"Parks"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[{"category":"Gyms","cards":[]},{"category":"Parks","cards":[]}]}`, w.Body.String())
}

func TestPreferencesEndpoints(t *testing.T) {
	r := setupRouter(&fakeExploreUsecase{}, true)

	w := doJSON(r, http.MethodGet, "/api/explore/preferences", ``)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"lifestyle":"yoga"`)

	w = doJSON(r, http.MethodPut, "/api/explore/preferences",
		`{"address_parts":["1 Elm St","Austin"],"transportation":[{"method":"walk","radius":1,"selected":true}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var saved domain.Preferences
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "uid-1", saved.UserID)
	assert.Equal(t, []string{"1 Elm St", "Austin"}, saved.AddressParts)
}

func TestFavoritesEndpoints(t *testing.T) {
	uc := &fakeExploreUsecase{}
	r := setupRouter(uc, true)

	w := doJSON(r, http.MethodPost, "/api/explore/favorites", `{"title":"Iron Temple","category":"Gyms"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/explore/favorites", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/explore/favorites/fav-1", ``)
	assert.Equal(t, http.StatusOK, w.Code)

	uc.removeErr = usecase.ErrFavoriteNotFound
	w = doJSON(r, http.MethodDelete, "/api/explore/favorites/fav-1", ``)
	assert.Equal(t, http.StatusNotFound, w.Code)

	uc.removeErr = usecase.ErrUnauthorized
	w = doJSON(r, http.MethodDelete, "/api/explore/favorites/fav-1", ``)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
