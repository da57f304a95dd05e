package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUpstreamStatus is returned when the generation service answers with a non-2xx status
	ErrUpstreamStatus = errors.New("recommendation service returned an error status")
	// ErrTransport is returned when the generation service cannot be reached
	ErrTransport = errors.New("recommendation service unreachable")
	// ErrMalformedResponse is returned when the body is not a JSON array of recommendation objects
	ErrMalformedResponse = errors.New("malformed recommendation response")
)

// ExploreInput is everything one recommendation request is built from
type ExploreInput struct {
	User                      *authdomain.User
	AddressParts              []string
	TransportationPreferences []domain.TransportationPreference
	LifestylePreferences      string
	AdditionalInfo            string
	SocialPreferences         []domain.SocialPreference
	Category                  domain.Category
	CategoryTitle             string
}

// GenerateContentRequest is the body posted to the generation service
type GenerateContentRequest struct {
	SystemInstruction string `json:"system_instruction" binding:"required"`
	SearchPrompt      string `json:"search_prompt" binding:"required"`
}

// CategoryResult is the outcome of one category in a batch
type CategoryResult struct {
	Category string                      `json:"category"`
	Cards    []domain.RecommendationCard `json:"cards"`
	Error    string                      `json:"error,omitempty"`
	Err      error                       `json:"-"`
}

// remoteCard mirrors one element of the generation service's JSON array
type remoteCard struct {
	Title                   string         `json:"title"`
	Place                   string         `json:"place"`
	Address                 string         `json:"address"`
	PersonalizedSummary     string         `json:"personalizedSummary"`
	RecommendationReasoning string         `json:"recommendationReasoning"`
	Confidence              flexibleNumber `json:"confidence"`
	Category                string         `json:"category"`
}

// flexibleNumber accepts 0.8 as well as "0.8"; the instruction block advertises the type as a string
type flexibleNumber float64

func (n *flexibleNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = flexibleNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("confidence %q is not a number", s)
	}
	*n = flexibleNumber(f)
	return nil
}

// Requester turns explore inputs into generation requests and maps the answers to cards
type Requester struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewRequester creates a Requester posting to endpoint.
// A nil client uses http.DefaultClient.
func NewRequester(endpoint string, client *http.Client, logger *zap.Logger) *Requester {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requester{
		endpoint: endpoint,
		client:   client,
		logger:   logger.Named("explore"),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for age computation
func (r *Requester) SetClock(now func() time.Time) {
	r.now = now
}

// BuildRequest assembles the system instruction and search prompt for one input
func (r *Requester) BuildRequest(in ExploreInput) GenerateContentRequest {
	profile := UserProfileText(
		in.User,
		in.AddressParts,
		in.TransportationPreferences,
		in.LifestylePreferences,
		in.AdditionalInfo,
		in.SocialPreferences,
		r.now(),
	)
	return GenerateContentRequest{
		SystemInstruction: profile + ExploreInstruction(),
		SearchPrompt:      CategoryPrompt(in.Category, in.CategoryTitle),
	}
}

// RequestRecommendations performs one round trip to the generation service.
// Every returned card carries the input category's title.
func (r *Requester) RequestRecommendations(ctx context.Context, in ExploreInput) ([]domain.RecommendationCard, error) {
	body, err := json.Marshal(r.BuildRequest(in))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d %s", ErrUpstreamStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return mapCards(respBody, in.Category.Title)
}

func mapCards(body []byte, categoryTitle string) ([]domain.RecommendationCard, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}

	var results []*remoteCard
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	cards := make([]domain.RecommendationCard, 0, len(results))
	for i, result := range results {
		if result == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrMalformedResponse, i)
		}
		cards = append(cards, domain.RecommendationCard{
			Title:               result.Title,
			Place:               result.Place,
			Address:             result.Address,
			PersonalizedSummary: result.PersonalizedSummary,
			Reasoning:           result.RecommendationReasoning,
			Confidence:          float64(result.Confidence),
			Category:            categoryTitle,
		})
	}
	return cards, nil
}

// GenerateRecommendations is RequestRecommendations with every failure logged
// and reported as an empty result.
func (r *Requester) GenerateRecommendations(ctx context.Context, in ExploreInput) []domain.RecommendationCard {
	cards, err := r.RequestRecommendations(ctx, in)
	if err != nil {
		r.logger.Error("Failed to fetch recommendations",
			zap.String("category", in.Category.Title),
			zap.Error(err))
		return []domain.RecommendationCard{}
	}
	return cards
}

// ExploreCategories runs one independent request per category, at most concurrency at a time.
// Results keep the order of categories; a failed category does not affect the others.
func (r *Requester) ExploreCategories(ctx context.Context, base ExploreInput, categories []domain.Category, concurrency int) []CategoryResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]CategoryResult, len(categories))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, category := range categories {
		in := base
		in.Category = category
		in.CategoryTitle = category.Title

		g.Go(func() error {
			cards, err := r.RequestRecommendations(ctx, in)
			result := CategoryResult{Category: category.Title, Cards: cards, Err: err}
			if err != nil {
				r.logger.Warn("Category request failed",
					zap.String("category", category.Title),
					zap.Error(err))
				result.Cards = []domain.RecommendationCard{}
				result.Error = err.Error()
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}
