package api

import (
	"net/http"

	authDelivery "settlease-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	protected := authDelivery.AuthMiddleware(h.authUsecase)

	// Generation service, posted to by the recommendation requester
	r.POST("/generate-content", h.generationHandler.GenerateContent)
	r.POST("/generate-content/file", protected, h.generationHandler.GenerateContentFromFile)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/firebase", h.authHandler.FirebaseSignIn)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", protected, h.authHandler.Logout)
			auth.GET("/me", protected, h.authHandler.Me)
			auth.GET("/session", protected, h.authHandler.Session)
		}

		api.PUT("/profile", protected, h.authHandler.UpdateProfile)

		// Explore routes (protected)
		explore := api.Group("/explore")
		explore.Use(protected)
		{
			explore.POST("", h.exploreHandler.Explore)
			explore.POST("/strict", h.exploreHandler.ExploreStrict)
			explore.POST("/batch", h.exploreHandler.ExploreBatch)
			explore.GET("/preferences", h.exploreHandler.GetPreferences)
			explore.PUT("/preferences", h.exploreHandler.SavePreferences)
			explore.GET("/favorites", h.exploreHandler.ListFavorites)
			explore.POST("/favorites", h.exploreHandler.AddFavorite)
			explore.DELETE("/favorites/:id", h.exploreHandler.RemoveFavorite)
		}

		// Places routes (protected)
		places := api.Group("/places")
		places.Use(protected)
		{
			places.POST("/info", h.placesHandler.GetInfo)
		}

		// Settings routes (protected) - Runtime configuration
		settings := api.Group("/settings")
		settings.Use(protected)
		{
			settings.GET("/ollama", h.settingsHandler.GetOllamaSettings)
			settings.PUT("/ollama", h.settingsHandler.UpdateOllamaSettings)
			settings.POST("/ollama/test", h.settingsHandler.TestOllamaConnection)
		}
	}
}
