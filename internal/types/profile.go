// Package types provides type definitions for structured data used throughout the career-mentor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Integrations holds the advisory external-tool toggles on a profile.
// They carry no behavioral weight in the engine; phase commands only use
// them to label export actions.
type Integrations struct {
	Notion   bool `json:"notion"`
	Obsidian bool `json:"obsidian"`
}

// Profile is the single active user profile. It is created once at intake
// completion and replaced wholesale on logout; only Integrations may be
// mutated in place afterwards.
type Profile struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	GithubURL    string       `json:"github_url"`
	LinkedinURL  string       `json:"linkedin_url"`
	CVText       string       `json:"cv_text"`
	BioSummary   string       `json:"bio_summary"`
	Onboarded    bool         `json:"onboarded"`
	Integrations Integrations `json:"integrations"`
}

// IntakeForm is the static part of onboarding, collected before the intake
// interview starts.
type IntakeForm struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	GithubURL   string `json:"github_url" validate:"omitempty,url"`
	LinkedinURL string `json:"linkedin_url" validate:"omitempty,url"`
	CVText      string `json:"cv_text"`
}

// Validate validates the IntakeForm using the validator.
func (f *IntakeForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
