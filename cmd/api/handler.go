package api

import (
	"time"

	authDelivery "settlease-backend/internal/auth/delivery"
	authUsecase "settlease-backend/internal/auth/usecase"
	exploreDelivery "settlease-backend/internal/explore/delivery"
	exploreUsecase "settlease-backend/internal/explore/usecase"
	generationDelivery "settlease-backend/internal/generation/delivery"
	generationUsecase "settlease-backend/internal/generation/usecase"
	placesDelivery "settlease-backend/internal/places/delivery"
	placesUsecase "settlease-backend/internal/places/usecase"
	"settlease-backend/pkg/ai"
	"settlease-backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the use cases the HTTP layer serves
type Dependencies struct {
	Auth       authUsecase.AuthUsecase
	Explore    exploreUsecase.ExploreUsecase
	Generation generationUsecase.GenerationUsecase
	Places     placesUsecase.PlacesUsecase
	Settings   *ai.RuntimeSettings
}

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	authHandler       *authDelivery.AuthHandler
	exploreHandler    *exploreDelivery.ExploreHandler
	generationHandler *generationDelivery.GenerationHandler
	placesHandler     *placesDelivery.PlacesHandler
	settingsHandler   *SettingsHandler
	config            *config.Config
	logger            *zap.Logger
}

func NewHandler(deps Dependencies, cfg *config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Settings == nil {
		deps.Settings = ai.NewRuntimeSettings(cfg.OllamaBaseURL, cfg.OllamaModel)
	}
	return &Handler{
		authUsecase:       deps.Auth,
		authHandler:       authDelivery.NewAuthHandler(deps.Auth),
		exploreHandler:    exploreDelivery.NewExploreHandler(deps.Explore),
		generationHandler: generationDelivery.NewGenerationHandler(deps.Generation),
		placesHandler:     placesDelivery.NewPlacesHandler(deps.Places),
		settingsHandler:   NewSettingsHandler(deps.Settings),
		config:            cfg,
		logger:            logger.Named("http"),
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(h.config.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, h)
	return r
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (h *Handler) Start(addr string) error {
	h.logger.Info("Server starting", zap.String("addr", addr))
	return h.Engine().Run(addr)
}
