package maps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

const (
	photoBaseURL = "https://maps.googleapis.com/maps/api/place/photo"
	photoWidth   = 400
	// RouteOK is the element status of a usable route
	RouteOK = "OK"
)

// Route is the trip from an origin to a destination
type Route struct {
	Status   string
	Distance string
	Duration string
}

// Client looks up places and travel distances with the Google Maps Platform
type Client struct {
	client *maps.Client
	apiKey string
}

// NewClient creates a Maps client. baseURL and httpClient are optional.
func NewClient(apiKey, baseURL string, httpClient *http.Client) (*Client, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}

	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Client{client: c, apiKey: apiKey}, nil
}

// FindPlaceID returns the id of the best text match, "" when nothing matches
func (c *Client) FindPlaceID(ctx context.Context, input string) (string, error) {
	resp, err := c.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     input,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields:    []maps.PlaceSearchFieldMask{maps.PlaceSearchFieldMaskPlaceID},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}
	return resp.Candidates[0].PlaceID, nil
}

// PhotoURL returns a photo link for the place, "" when it has none
func (c *Client) PhotoURL(ctx context.Context, placeID string) (string, error) {
	details, err := c.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  []maps.PlaceDetailsFieldMask{maps.PlaceDetailsFieldMaskPhotos},
	})
	if err != nil {
		return "", err
	}
	if len(details.Photos) == 0 || details.Photos[0].PhotoReference == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(photoWidth))
	q.Set("photoreference", details.Photos[0].PhotoReference)
	q.Set("key", c.apiKey)
	return photoBaseURL + "?" + q.Encode(), nil
}

// Route returns the imperial distance and travel time between two addresses
func (c *Client) Route(ctx context.Context, origin, destination string) (*Route, error) {
	resp, err := c.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Units:        maps.UnitsImperial,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return &Route{Status: "NOT_FOUND"}, nil
	}

	el := resp.Rows[0].Elements[0]
	route := &Route{Status: el.Status}
	if el.Status == RouteOK {
		route.Distance = el.Distance.HumanReadable
		route.Duration = FormatDuration(el.Duration)
	}
	return route, nil
}

// FormatDuration renders a travel time the way Maps does, e.g. "1 hour 5 mins"
func FormatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute).Minutes())
	if mins < 1 {
		mins = 1
	}
	days, hours := mins/(24*60), (mins/60)%24
	mins %= 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 && days == 0 {
		parts = append(parts, plural(mins, "min"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
