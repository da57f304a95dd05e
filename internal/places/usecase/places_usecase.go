package usecase

import (
	"context"
	"fmt"
	"strings"

	"settlease-backend/pkg/maps"

	"go.uber.org/zap"
)

const (
	MissingAPIKeyText = "Missing API Key"
	NoPlaceFoundText  = "No place found"
	NoRouteFoundText  = "No route found"
	UnavailableText   = "Unavailable"

	mapsLinkPrefix = "https://www.google.com/maps/place/?q=place_id:"
)

// PlaceFinder is the subset of the Maps client the places lookup needs
type PlaceFinder interface {
	FindPlaceID(ctx context.Context, input string) (string, error)
	PhotoURL(ctx context.Context, placeID string) (string, error)
	Route(ctx context.Context, origin, destination string) (*maps.Route, error)
}

// PlaceInfo enriches a recommended place. Failures are reported in Distance.
type PlaceInfo struct {
	PlaceID  *string `json:"placeID"`
	MapsLink *string `json:"mapsLink"`
	PhotoURL *string `json:"photoURL"`
	Distance string  `json:"distance"`
	Duration *string `json:"duration"`
}

// PlacesUsecase looks up map details for recommended places
type PlacesUsecase interface {
	GetInfo(ctx context.Context, address, place, homeAddress string) *PlaceInfo
}

type placesUsecase struct {
	finder PlaceFinder
	logger *zap.Logger
}

// NewPlacesUsecase creates a PlacesUsecase. A nil finder means no API key is configured.
func NewPlacesUsecase(finder PlaceFinder, logger *zap.Logger) PlacesUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &placesUsecase{finder: finder, logger: logger.Named("places")}
}

func (u *placesUsecase) GetInfo(ctx context.Context, address, place, homeAddress string) *PlaceInfo {
	if u.finder == nil {
		return &PlaceInfo{Distance: MissingAPIKeyText}
	}

	placeID, err := u.finder.FindPlaceID(ctx, place+" "+address)
	if err != nil {
		u.logger.Warn("Place search failed", zap.String("place", place), zap.Error(err))
		if status, ok := apiStatus(err); ok {
			return &PlaceInfo{Distance: "API error: " + status}
		}
		return &PlaceInfo{Distance: fmt.Sprintf("Request error: %v", err)}
	}
	if placeID == "" {
		return &PlaceInfo{Distance: NoPlaceFoundText}
	}

	link := mapsLinkPrefix + placeID
	info := &PlaceInfo{PlaceID: &placeID, MapsLink: &link}

	if photo, err := u.finder.PhotoURL(ctx, placeID); err != nil {
		u.logger.Debug("Photo lookup failed", zap.String("place_id", placeID), zap.Error(err))
	} else if photo != "" {
		info.PhotoURL = &photo
	}

	route, err := u.finder.Route(ctx, homeAddress, address)
	switch {
	case err != nil:
		u.logger.Warn("Distance lookup failed", zap.String("place_id", placeID), zap.Error(err))
		if status, ok := apiStatus(err); ok {
			info.Distance = "Distance API error: " + status
		} else {
			info.Distance = fmt.Sprintf("Distance request error: %v", err)
		}
	case route.Status != maps.RouteOK:
		noRoute := NoRouteFoundText
		info.Distance = noRoute
		info.Duration = &noRoute
	default:
		info.Distance = orUnavailable(route.Distance)
		duration := orUnavailable(route.Duration)
		info.Duration = &duration
	}

	return info
}

// apiStatus extracts the status from errors like "maps: REQUEST_DENIED - key invalid"
func apiStatus(err error) (string, bool) {
	msg, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return "", false
	}
	status, _, _ := strings.Cut(msg, " - ")
	return status, status != ""
}

func orUnavailable(s string) string {
	if s == "" {
		return UnavailableText
	}
	return s
}
