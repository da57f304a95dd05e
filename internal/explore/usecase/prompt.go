package usecase

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
	"settlease-backend/pkg/birthday"
)

// NoTransportationText is used when no transportation preference is selected
const NoTransportationText = "No transportation preferences selected."

const exploreInstruction = "\n" +
	"Generate and output an array of at least three JSON objects that follow this JSON structure " +
	"with results of your search based on analysis using Google Maps and Google Places API. " +
	"The output should strictly adhere to this JSON format without additional commentary:  \n" +
	"{\n" +
	"  \"title\": \"string\",\n" +
	"  \"place\": \"string\",\n" +
	"  \"address\": \"string\",\n" +
	"  \"personalizedSummary\": \"string\",\n" +
	"  \"recommendationReasoning\": \"string\",\n" +
	"  \"confidence\": \"number\",\n" +
	"  \"category\": \"string\"\n" +
	"}\n"

// ExploreInstruction returns the fixed block that tells the generation service
// to answer with a bare JSON array of recommendation objects.
func ExploreInstruction() string {
	return exploreInstruction
}

// TransportationString renders the selected transportation preferences,
// nearest radius first, as an Oxford-comma list.
func TransportationString(prefs []domain.TransportationPreference) string {
	selected := make([]domain.TransportationPreference, 0, len(prefs))
	for _, p := range prefs {
		if p.Selected {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return NoTransportationText
	}

	slices.SortStableFunc(selected, func(a, b domain.TransportationPreference) int {
		return cmp.Compare(a.Radius, b.Radius)
	})

	formatted := make([]string, len(selected))
	for i, p := range selected {
		formatted[i] = fmt.Sprintf("%s (%s miles)", p.Method, formatRadius(p.Radius))
	}

	if len(formatted) == 1 {
		return formatted[0]
	}
	last := len(formatted) - 1
	return strings.Join(formatted[:last], ", ") + ", and " + formatted[last]
}

func formatRadius(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// SelectedPriorities joins the selected social preference names in their original order
func SelectedPriorities(prefs []domain.SocialPreference) string {
	names := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p.Selected {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

// UserProfileText describes the user and their preferences as one paragraph.
// addressParts holds the street address at index 0 and the city at index 1.
func UserProfileText(
	user *authdomain.User,
	addressParts []string,
	transportation []domain.TransportationPreference,
	lifestyle string,
	additionalInfo string,
	social []domain.SocialPreference,
	today time.Time,
) string {
	var age, gender string
	if user != nil {
		if user.Birthday != nil {
			age = strconv.Itoa(birthday.Age(*user.Birthday, today))
		}
		gender = user.Gender
	}

	return fmt.Sprintf(
		"I am a %s year old %s, and I am moving to %s. "+
			"My address is %s, and I prefer to travel by %s. "+
			"I have the following routines and preferences in my locations: %s. "+
			"Additional information: %s. "+
			"When deciding on the places I go frequently, I care about the following priorities: %s.",
		age, gender, addressPart(addressParts, 1),
		addressPart(addressParts, 0), TransportationString(transportation),
		lifestyle,
		additionalInfo,
		SelectedPriorities(social),
	)
}

func addressPart(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// CategoryPrompt builds the search directive for one category.
// Omitted segments leave their surrounding spaces in place.
func CategoryPrompt(category domain.Category, titleOverride string) string {
	title := titleOverride
	if title == "" {
		title = category.Title
	}

	var cost, vibe, userPrefs string
	if category.CostPreference != "" {
		cost = "in the " + category.CostPreference + " price range"
	}
	if len(category.EnvironmentDescriptors) > 0 {
		vibe = "with a vibe of " + strings.Join(category.EnvironmentDescriptors, ", ")
	}
	if category.UserPreferences != "" {
		userPrefs = "keeping in mind your preference for " + category.UserPreferences
	}

	return "We will specifically look for " + title + " " + cost + " " + vibe + ". " + userPrefs
}
