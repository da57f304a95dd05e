package ai

import (
	"context"
	"fmt"

	"settlease-backend/pkg/gemini"

	"go.uber.org/zap"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama settings, read on every request
	Settings *RuntimeSettings
}

// NewContentGenerator creates a ContentGenerator based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewContentGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (ContentGenerator, error) {
	if cfg.Settings == nil {
		cfg.Settings = NewRuntimeSettings("", "")
	}
	ollama := NewOllamaServiceWithSettings(cfg.Settings)

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		geminiService, err := gemini.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return geminiService, nil

	case ProviderOllama:
		return ollama, nil

	default:
		// Gemini with Ollama fallback if an API key is available, otherwise Ollama only
		if cfg.GeminiAPIKey == "" {
			return ollama, nil
		}
		geminiService, err := gemini.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewFallbackService(geminiService, ollama, logger), nil
	}
}
