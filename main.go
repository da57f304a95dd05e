package main

import (
	"context"
	"net/http"

	api "settlease-backend/cmd/api"
	authdomain "settlease-backend/internal/auth/domain"
	authRepo "settlease-backend/internal/auth/repository"
	"settlease-backend/internal/auth/scheduler"
	"settlease-backend/internal/auth/session"
	authUsecase "settlease-backend/internal/auth/usecase"
	exploredomain "settlease-backend/internal/explore/domain"
	exploreRepo "settlease-backend/internal/explore/repository"
	exploreUsecase "settlease-backend/internal/explore/usecase"
	generationUsecase "settlease-backend/internal/generation/usecase"
	placesUsecase "settlease-backend/internal/places/usecase"
	"settlease-backend/pkg/ai"
	"settlease-backend/pkg/config"
	"settlease-backend/pkg/database"
	"settlease-backend/pkg/drive"
	"settlease-backend/pkg/firebase"
	"settlease-backend/pkg/maps"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.StoredToken{},
		&exploredomain.Preferences{},
		&exploredomain.Favorite{},
	); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	tokenRepo := authRepo.NewTokenRepository(db)
	prefsRepo := exploreRepo.NewGormPreferenceRepository(db)
	favRepo := exploreRepo.NewGormFavoriteRepository(db)

	firebaseClient, err := firebase.NewClient(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase", zap.Error(err))
	}

	// AI provider, switchable through AI_PROVIDER
	settings := ai.NewRuntimeSettings(cfg.OllamaBaseURL, cfg.OllamaModel)
	generator, err := ai.NewContentGenerator(ctx, ai.Config{
		Provider:     ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		Settings:     settings,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}
	logger.Info("AI provider initialized", zap.String("provider", cfg.AIProvider))

	var finder placesUsecase.PlaceFinder
	if cfg.PlacesAPIKey != "" {
		mapsClient, err := maps.NewClient(cfg.PlacesAPIKey, "", nil)
		if err != nil {
			logger.Warn("Places lookup disabled", zap.Error(err))
		} else {
			finder = mapsClient
		}
	} else {
		logger.Warn("PLACES_API_KEY not configured, places lookup disabled")
	}

	// Initialize use cases (dependency injection)
	sessions := session.NewRegistry()
	authUc := authUsecase.NewAuthUsecase(userRepo, tokenRepo, firebaseClient, sessions, cfg, logger)

	requester := exploreUsecase.NewRequester(cfg.ExploreEndpoint, &http.Client{Timeout: cfg.ExploreTimeout}, logger)
	exploreUc := exploreUsecase.NewExploreUsecase(requester, prefsRepo, favRepo, cfg.ExploreConcurrency)

	generationUc := generationUsecase.NewGenerationUsecase(generator, authUc, drive.NewService(), generationUsecase.Options{
		MaxRetries: cfg.GenerationMaxRetries,
		RetryDelay: cfg.GenerationRetryDelay,
		QuotaDelay: cfg.GenerationQuotaDelay,
	}, logger)

	placesUc := placesUsecase.NewPlacesUsecase(finder, logger)

	sweeper := scheduler.NewTokenSweeper(userRepo, cfg.TokenSweepEvery, logger)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(api.Dependencies{
		Auth:       authUc,
		Explore:    exploreUc,
		Generation: generationUc,
		Places:     placesUc,
		Settings:   settings,
	}, cfg, logger)

	// Start server
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewExample()
	}
	return logger
}
