package domain

// Category is a search topic (e.g. "Gyms") with optional modifiers
type Category struct {
	Title                  string   `json:"title" yaml:"title" binding:"required"`
	CostPreference         string   `json:"cost_preference,omitempty" yaml:"cost_preference"`
	EnvironmentDescriptors []string `json:"environment_descriptors,omitempty" yaml:"environment_descriptors"`
	UserPreferences        string   `json:"user_preferences,omitempty" yaml:"user_preferences"`
}
