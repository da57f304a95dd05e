package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-1.5-pro"

// Service generates content with the Gemini API
type Service struct {
	client *genai.Client
	model  string
}

func NewService(ctx context.Context, apiKey, model string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Service{client: client, model: model}, nil
}

// GenerateContent sends the parts as one user turn under the given system instruction
func (s *Service) GenerateContent(ctx context.Context, systemInstruction string, parts []string) (string, error) {
	userParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		userParts = append(userParts, genai.NewPartFromText(p))
	}
	contents := []*genai.Content{genai.NewContentFromParts(userParts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](1),
		TopP:        genai.Ptr[float32](0.95),
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryDangerousContent,
				Threshold: genai.HarmBlockThresholdBlockNone,
			},
		},
	}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Gemini returned no text")
	}
	return text, nil
}
