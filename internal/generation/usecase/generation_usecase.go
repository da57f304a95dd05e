package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"settlease-backend/pkg/ai"

	"go.uber.org/zap"
)

// MaxFileChars caps how much of a file is sent to the model
const MaxFileChars = 900000

const (
	searchLeadIn = "Follow the system instructions and"
	fileLeadIn   = "Follow the system instructions"
)

// Options controls retries
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	QuotaDelay time.Duration // wait after a quota error on file input
}

// generationUsecase implements GenerationUsecase interface
type generationUsecase struct {
	generator  ai.ContentGenerator
	tokens     TokenReader
	downloader FileDownloader
	opts       Options
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewGenerationUsecase creates a new instance of generationUsecase
func NewGenerationUsecase(generator ai.ContentGenerator, tokens TokenReader, downloader FileDownloader, opts Options, logger *zap.Logger) GenerationUsecase {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &generationUsecase{
		generator:  generator,
		tokens:     tokens,
		downloader: downloader,
		opts:       opts,
		logger:     logger.Named("generation"),
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (u *generationUsecase) Generate(ctx context.Context, systemInstruction, searchPrompt string) (json.RawMessage, error) {
	parts := []string{searchLeadIn, searchPrompt}

	var lastErr error
	for attempt := 1; attempt <= u.opts.MaxRetries; attempt++ {
		text, err := u.generator.GenerateContent(ctx, systemInstruction, parts)
		if err == nil {
			result, extractErr := ExtractJSON(text)
			if extractErr == nil {
				return result, nil
			}
			u.logger.Warn("Failed to extract JSON from response", zap.Int("attempt", attempt))
			lastErr = extractErr
		} else if ai.IsDeadlineError(err) || ai.IsQuotaError(err) {
			u.logger.Warn("Provider busy, retrying", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		} else {
			u.logger.Error("Provider error", zap.Error(err))
			lastErr = err
			break
		}

		if attempt < u.opts.MaxRetries {
			if err := u.sleep(ctx, u.opts.RetryDelay); err != nil {
				return nil, err
			}
		}
	}

	u.logger.Error("Failed to generate content", zap.Int("max_retries", u.opts.MaxRetries), zap.Error(lastErr))
	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

func (u *generationUsecase) GenerateFromFile(ctx context.Context, userID, systemInstruction, fileID string) (json.RawMessage, error) {
	if u.tokens == nil || u.downloader == nil {
		return nil, errors.New("file input is not configured")
	}

	accessToken, err := u.tokens.AccessToken(userID)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, ErrNoAccessToken
	}

	data, err := u.downloader.Download(ctx, accessToken, fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	parts := []string{fileLeadIn, truncateChars(string(data), MaxFileChars)}

	var lastErr error
	for attempt := 1; attempt <= u.opts.MaxRetries; attempt++ {
		delay := u.opts.RetryDelay

		text, err := u.generator.GenerateContent(ctx, systemInstruction, parts)
		if err == nil {
			result, extractErr := ExtractFencedJSON(text)
			if extractErr == nil {
				return result, nil
			}
			u.logger.Warn("Extracted JSON is empty, retrying", zap.Int("attempt", attempt))
			lastErr = extractErr
			delay = 0
		} else {
			if ai.IsQuotaError(err) {
				delay = u.opts.QuotaDelay
			}
			u.logger.Warn("File generation attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("attempts", u.opts.MaxRetries),
				zap.Error(err))
			lastErr = err
		}

		if attempt < u.opts.MaxRetries {
			if err := u.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// truncateChars keeps at most n characters of s
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
