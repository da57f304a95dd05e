package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFallbackCooldown is how long Ollama stays first after Gemini ran out of quota or was unreachable
const DefaultFallbackCooldown = 5 * time.Minute

// FallbackService implements smart AI provider routing with fallback
// - Gemini first (better quality)
// - Ollama when Gemini is out of quota or unreachable; Ollama then stays first for the cooldown
// - Gemini when Ollama is unreachable while it is first
// Other provider errors are returned as they are.
type FallbackService struct {
	gemini   ContentGenerator
	ollama   ContentGenerator
	logger   *zap.Logger
	cooldown time.Duration
	now      func() time.Time

	mu          sync.Mutex
	ollamaUntil time.Time
}

type namedProvider struct {
	name string
	gen  ContentGenerator
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini, ollama ContentGenerator, logger *zap.Logger) *FallbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackService{
		gemini:   gemini,
		ollama:   ollama,
		logger:   logger.Named("ai"),
		cooldown: DefaultFallbackCooldown,
		now:      time.Now,
	}
}

// IsConnectionError checks if the error is a network/connection error
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return containsAny(err.Error(),
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"dial tcp",
		"EOF",
	)
}

// IsQuotaError checks if the error indicates API quota exhaustion (429)
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(),
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"RESOURCE_EXHAUSTED",
	)
}

// IsDeadlineError checks if the provider gave up because of a deadline
func IsDeadlineError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return containsAny(err.Error(), "DEADLINE_EXCEEDED", "deadline exceeded", "504")
}

func containsAny(s string, indicators ...string) bool {
	s = strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(s, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}

// ShouldFallback reports whether another provider may succeed where this one failed
func ShouldFallback(err error) bool {
	return IsQuotaError(err) || IsConnectionError(err)
}

func (f *FallbackService) order() (namedProvider, namedProvider) {
	gemini := namedProvider{name: "gemini", gen: f.gemini}
	ollama := namedProvider{name: "ollama", gen: f.ollama}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.now().Before(f.ollamaUntil) {
		return ollama, gemini
	}
	return gemini, ollama
}

func (f *FallbackService) servedBy(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "ollama" {
		f.ollamaUntil = f.now().Add(f.cooldown)
	} else {
		f.ollamaUntil = time.Time{}
	}
}

// GenerateContent asks the preferred provider and switches to the other one on quota or connection errors
func (f *FallbackService) GenerateContent(ctx context.Context, systemInstruction string, parts []string) (string, error) {
	first, second := f.order()
	if first.gen == nil {
		first, second = second, namedProvider{}
	}
	if first.gen == nil {
		return "", fmt.Errorf("no AI provider available for content generation")
	}

	result, err := first.gen.GenerateContent(ctx, systemInstruction, parts)
	if err == nil {
		return result, nil
	}
	if second.gen == nil || !ShouldFallback(err) {
		return "", fmt.Errorf("%s generation failed: %w", first.name, err)
	}

	f.logger.Warn("Provider unavailable, falling back",
		zap.String("from", first.name),
		zap.String("to", second.name),
		zap.Error(err),
	)
	result, err = second.gen.GenerateContent(ctx, systemInstruction, parts)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", second.name, err)
	}
	f.servedBy(second.name)
	return result, nil
}
