package ai

import (
	"context"
)

// ContentGenerator is the interface for LLM content generation.
// Implement this interface to add new AI providers (Gemini, Ollama, etc.)
type ContentGenerator interface {
	// GenerateContent runs one generation with a system instruction and the user parts,
	// returning the raw model text.
	GenerateContent(ctx context.Context, systemInstruction string, parts []string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
