package firebase

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Identity is the identity provider's view of a signed-in user
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
	CreatedAt   time.Time
	LastSignIn  time.Time
}

// Client wraps Firebase Authentication functionality
type Client struct {
	authClient *auth.Client
}

// NewClient creates a new Firebase client using the provided credentials file.
// Extra options are appended after the credentials, e.g. an endpoint for tests.
func NewClient(ctx context.Context, credentialsFile, projectID string, opts ...option.ClientOption) (*Client, error) {
	var clientOpts []option.ClientOption
	if credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	zap.L().Named("firebase").Info("Client initialized")
	return &Client{authClient: authClient}, nil
}

// VerifyIdentity checks the ID token and loads the matching user record
func (c *Client) VerifyIdentity(ctx context.Context, idToken string) (*Identity, error) {
	token, err := c.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	record, err := c.authClient.GetUser(ctx, token.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", token.UID, err)
	}

	return identityFromRecord(record, time.Now()), nil
}

// identityFromRecord maps a user record, using now for missing metadata timestamps
func identityFromRecord(record *auth.UserRecord, now time.Time) *Identity {
	id := &Identity{
		CreatedAt:  now,
		LastSignIn: now,
	}
	if record.UserInfo != nil {
		id.UID = record.UID
		id.DisplayName = record.DisplayName
		id.Email = record.Email
		id.PhotoURL = record.PhotoURL
	}
	if record.UserMetadata != nil {
		if record.UserMetadata.CreationTimestamp > 0 {
			id.CreatedAt = time.UnixMilli(record.UserMetadata.CreationTimestamp)
		}
		if record.UserMetadata.LastLogInTimestamp > 0 {
			id.LastSignIn = time.UnixMilli(record.UserMetadata.LastLogInTimestamp)
		}
	}
	return id
}
