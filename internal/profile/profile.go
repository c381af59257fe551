// Package profile defines persona profiles and their JSON store.
package profile

import (
	"fmt"
	"strings"
)

type Personality struct {
	Traits    []string `json:"traits,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Goals     []string `json:"goals,omitempty"`
}

type Background struct {
	Education string `json:"education,omitempty"`
	Location  string `json:"location,omitempty"`
	Family    string `json:"family,omitempty"`
}

type Profile struct {
	Name        string      `json:"name"`
	Age         int         `json:"age,omitempty"`
	Occupation  string      `json:"occupation,omitempty"`
	Hobbies     []string    `json:"hobbies,omitempty"`
	Personality Personality `json:"personality,omitempty"`
	Background  Background  `json:"background,omitempty"`
}

// Interests merges declared hobbies with personality interests, deduplicated
// in first-seen order.
func (p Profile) Interests() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range append(append([]string{}, p.Personality.Interests...), p.Hobbies...) {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Bio is a short self-description used in introductions.
func (p Profile) Bio() string {
	var parts []string
	if p.Age > 0 {
		parts = append(parts, fmt.Sprintf("I'm %d years old.", p.Age))
	}
	if p.Occupation != "" {
		parts = append(parts, fmt.Sprintf("I work as a %s.", p.Occupation))
	}
	if p.Background.Location != "" {
		parts = append(parts, fmt.Sprintf("I live in %s.", p.Background.Location))
	}
	if len(parts) == 0 {
		return "Nice to meet you!"
	}
	return strings.Join(parts, " ")
}

// Formatted renders the full profile as the plain-text block fed into
// generation prompts.
func (p Profile) Formatted() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Age > 0 {
		fmt.Fprintf(&b, "Age: %d\n", p.Age)
	}
	if p.Occupation != "" {
		fmt.Fprintf(&b, "Occupation: %s\n", p.Occupation)
	}
	if len(p.Hobbies) > 0 {
		fmt.Fprintf(&b, "Hobbies: %s\n", strings.Join(p.Hobbies, ", "))
	}
	if len(p.Personality.Traits) > 0 {
		fmt.Fprintf(&b, "Personality traits: %s\n", strings.Join(p.Personality.Traits, ", "))
	}
	if len(p.Personality.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(p.Personality.Interests, ", "))
	}
	if len(p.Personality.Goals) > 0 {
		fmt.Fprintf(&b, "Goals: %s\n", strings.Join(p.Personality.Goals, ", "))
	}
	if p.Background.Education != "" {
		fmt.Fprintf(&b, "Education: %s\n", p.Background.Education)
	}
	if p.Background.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Background.Location)
	}
	if p.Background.Family != "" {
		fmt.Fprintf(&b, "Family: %s\n", p.Background.Family)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Slug derives the store identifier from the persona name.
func (p Profile) Slug() string {
	s := strings.ToLower(strings.TrimSpace(p.Name))
	s = strings.Join(strings.Fields(s), "_")
	var b strings.Builder
	for _, r := range s {
		if r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the minimum a profile needs to join a dialogue.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return nil
}
