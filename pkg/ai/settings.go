package ai

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

var ErrInvalidBaseURL = errors.New("invalid Ollama base URL")

// RuntimeSettings holds Ollama settings that can be changed while the server runs
type RuntimeSettings struct {
	mu            sync.RWMutex
	ollamaBaseURL string
	ollamaModel   string
}

// NewRuntimeSettings initializes runtime settings from static config
func NewRuntimeSettings(ollamaBaseURL, ollamaModel string) *RuntimeSettings {
	return &RuntimeSettings{
		ollamaBaseURL: ollamaBaseURL,
		ollamaModel:   ollamaModel,
	}
}

func (s *RuntimeSettings) OllamaBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaBaseURL
}

func (s *RuntimeSettings) OllamaModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaModel
}

// UpdateOllama replaces the base URL, and the model when one is given
func (s *RuntimeSettings) UpdateOllama(baseURL, model string) error {
	if err := ValidateBaseURL(baseURL); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ollamaBaseURL = baseURL
	if model != "" {
		s.ollamaModel = model
	}
	return nil
}

// ValidateBaseURL accepts absolute http(s) URLs with a host and nothing else
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}
	if u.Host == "" || u.Hostname() == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}
	if u.User != nil || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: credentials, query and fragment are not allowed", ErrInvalidBaseURL)
	}
	return nil
}
