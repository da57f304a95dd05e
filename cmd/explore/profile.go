package main

import (
	"fmt"
	"os"
	"strings"

	authdomain "settlease-backend/internal/auth/domain"
	"settlease-backend/internal/explore/domain"
	"settlease-backend/internal/explore/usecase"
	"settlease-backend/pkg/birthday"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML file describing who is exploring and what they care about
type Profile struct {
	User struct {
		Name     string `yaml:"name"`
		Gender   string `yaml:"gender"`
		Birthday string `yaml:"birthday"`
	} `yaml:"user"`
	AddressParts   []string                          `yaml:"address_parts"`
	Transportation []domain.TransportationPreference `yaml:"transportation"`
	Lifestyle      string                            `yaml:"lifestyle"`
	AdditionalInfo string                            `yaml:"additional_info"`
	Social         []domain.SocialPreference         `yaml:"social"`
	Categories     []domain.Category                 `yaml:"categories"`
}

// LoadProfile reads and validates a profile file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(data)
}

func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if p.User.Birthday != "" {
		if _, err := birthday.Parse(p.User.Birthday); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Input builds the requester input for one category
func (p *Profile) Input(category domain.Category, titleOverride string) usecase.ExploreInput {
	user := &authdomain.User{Name: p.User.Name, Gender: p.User.Gender}
	if b, err := birthday.Parse(p.User.Birthday); err == nil {
		user.Birthday = &b
	}
	return usecase.ExploreInput{
		User:                      user,
		AddressParts:              p.AddressParts,
		TransportationPreferences: p.Transportation,
		LifestylePreferences:      p.Lifestyle,
		AdditionalInfo:            p.AdditionalInfo,
		SocialPreferences:         p.Social,
		Category:                  category,
		CategoryTitle:             titleOverride,
	}
}

// Category returns the profile's category with this title (case-insensitive),
// or a bare category when the profile has none.
func (p *Profile) Category(title string) domain.Category {
	for _, c := range p.Categories {
		if strings.EqualFold(c.Title, title) {
			return c
		}
	}
	return domain.Category{Title: title}
}
