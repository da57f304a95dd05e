package usecase

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrGenerationFailed = errors.New("failed to generate content")
	ErrNoJSON           = errors.New("no JSON found in model output")
	ErrNoAccessToken    = errors.New("no Google access token stored for user")
	ErrDownloadFailed   = errors.New("failed to download file")
)

// TokenReader reads the user's stored Google access token
type TokenReader interface {
	AccessToken(userID string) (string, error)
}

// FileDownloader fetches a Drive file with a user's access token
type FileDownloader interface {
	Download(ctx context.Context, accessToken, fileID string) ([]byte, error)
}

// GenerationUsecase produces JSON from a system instruction and user input
type GenerationUsecase interface {
	// Generate answers a search prompt; the result is the model's JSON verbatim
	Generate(ctx context.Context, systemInstruction, searchPrompt string) (json.RawMessage, error)

	// GenerateFromFile uses the content of a Drive file as input
	GenerateFromFile(ctx context.Context, userID, systemInstruction, fileID string) (json.RawMessage, error)
}
