package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Service downloads Drive files on behalf of a user
type Service struct {
	endpoint   string
	baseClient *http.Client
}

func NewService() *Service {
	return &Service{}
}

// NewServiceWithEndpoint points the Drive API at another base URL, using base for transport
func NewServiceWithEndpoint(endpoint string, base *http.Client) *Service {
	return &Service{endpoint: endpoint, baseClient: base}
}

// Download returns the content of a file using the user's OAuth access token
func (s *Service) Download(ctx context.Context, accessToken, fileID string) ([]byte, error) {
	srv, err := s.driveService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("unable to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read file %s: %w", fileID, err)
	}
	return data, nil
}

func (s *Service) driveService(ctx context.Context, accessToken string) (*drive.Service, error) {
	clientCtx := ctx
	if s.baseClient != nil {
		clientCtx = context.WithValue(ctx, oauth2.HTTPClient, s.baseClient)
	}
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(clientCtx, tokenSource)

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive service: %w", err)
	}
	return srv, nil
}
