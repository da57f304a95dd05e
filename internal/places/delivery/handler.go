package delivery

import (
	"net/http"

	"settlease-backend/internal/places/usecase"

	"github.com/gin-gonic/gin"
)

// PlacesHandler serves place enrichment
type PlacesHandler struct {
	placesUsecase usecase.PlacesUsecase
}

func NewPlacesHandler(placesUsecase usecase.PlacesUsecase) *PlacesHandler {
	return &PlacesHandler{placesUsecase: placesUsecase}
}

// PlaceInfoRequest names the place to look up and where the user lives
type PlaceInfoRequest struct {
	Address     string `json:"address" binding:"required"`
	Place       string `json:"place" binding:"required"`
	HomeAddress string `json:"home_address"`
}

// GetInfo POST /api/places/info
func (h *PlacesHandler) GetInfo(c *gin.Context) {
	var req PlaceInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.placesUsecase.GetInfo(c.Request.Context(), req.Address, req.Place, req.HomeAddress))
}
