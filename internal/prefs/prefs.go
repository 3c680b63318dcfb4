// Package prefs holds the single matching-preference profile and its
// persistence. Exactly one profile exists; saving replaces it wholesale.
package prefs

import (
	"strings"

	"github.com/akarpov/jobtrack/internal/store"
)

const DefaultMinMatchScore = 40

// Preferences is the user's matching profile. JSON field names are part of
// the stored-state contract and must not change.
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// Default returns the profile used before the user has saved anything.
// It is never persisted implicitly.
func Default() *Preferences {
	return &Preferences{
		PreferredLocations: []string{},
		PreferredMode:      []string{},
		MinMatchScore:      DefaultMinMatchScore,
	}
}

// IsEmpty reports whether the profile expresses no preference at all.
// Scoring is disabled for an empty profile.
func (p *Preferences) IsEmpty() bool {
	return strings.TrimSpace(p.RoleKeywords) == "" &&
		len(p.PreferredLocations) == 0 &&
		len(p.PreferredMode) == 0 &&
		strings.TrimSpace(p.ExperienceLevel) == "" &&
		strings.TrimSpace(p.Skills) == ""
}

// KeywordList returns the role keywords split on commas, trimmed and
// lowercased, with empties dropped.
func (p *Preferences) KeywordList() []string {
	return splitCSV(p.RoleKeywords)
}

// SkillList returns the user skills split the same way as KeywordList.
func (p *Preferences) SkillList() []string {
	return splitCSV(p.Skills)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Store reads and writes the persisted profile.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted profile, or (nil, false) when none was ever
// saved or the stored payload does not parse.
func (s *Store) Load() (*Preferences, bool) {
	var p Preferences
	if !store.LoadJSON(s.kv, store.KeyPreferences, &p) {
		return nil, false
	}
	return &p, true
}

// Save persists the full profile, replacing any prior value.
func (s *Store) Save(p *Preferences) error {
	return store.SaveJSON(s.kv, store.KeyPreferences, p)
}
