package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaService implements ContentGenerator using a local Ollama server
type OllamaService struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
	client     *http.Client
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{
		getBaseURL: func() string { return baseURL },
		getModel:   func() string { return model },
		client:     &http.Client{},
	}
}

// NewOllamaServiceWithSettings creates an Ollama service that reads its target from runtime settings
func NewOllamaServiceWithSettings(settings *RuntimeSettings) *OllamaService {
	return &OllamaService{
		getBaseURL: settings.OllamaBaseURL,
		getModel:   settings.OllamaModel,
		client:     &http.Client{},
	}
}

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	System  string                 `json:"system,omitempty"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateContent implements ContentGenerator
func (o *OllamaService) GenerateContent(ctx context.Context, systemInstruction string, parts []string) (string, error) {
	url := strings.TrimRight(o.getBaseURL(), "/") + "/api/generate"

	payload := ollamaGenerateRequest{
		Model:  o.getModel(),
		System: systemInstruction,
		Prompt: strings.Join(parts, "\n"),
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 1,
			"top_p":       0.95,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Response, nil
}

// Ping checks that the Ollama server answers on /api/tags
func (o *OllamaService) Ping(ctx context.Context, baseURL string) (int, error) {
	if baseURL == "" {
		baseURL = o.getBaseURL()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/tags", nil)
	if err != nil {
		return 0, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
