// Package types provides type definitions for structured data used throughout the talent-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// JobProfile represents a job requisition as supplied by the surrounding application
type JobProfile struct {
	Title           string     `json:"title"`
	NormalizedTitle string     `json:"normalized_title,omitempty"`
	Location        string     `json:"location,omitempty"`
	Seniority       string     `json:"seniority,omitempty"`
	Skills          []JobSkill `json:"skills"`
}

// JobSkill represents a skill requirement on a job profile
type JobSkill struct {
	Name           string  `json:"name"`
	NormalizedName string  `json:"normalized_name,omitempty"`
	Required       bool    `json:"required"`
	Weight         float64 `json:"weight,omitempty"`
}

// RequiredSkills returns the normalized names of all required skills
func (j *JobProfile) RequiredSkills() []string {
	var required []string
	for _, s := range j.Skills {
		if s.Required {
			required = append(required, s.EffectiveName())
		}
	}
	return required
}

// SkillNames returns the effective (normalized when available) names of all skills
func (j *JobProfile) SkillNames() []string {
	names := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		names = append(names, s.EffectiveName())
	}
	return names
}

// EffectiveName returns the normalized name when set, falling back to the raw name
func (s JobSkill) EffectiveName() string {
	if s.NormalizedName != "" {
		return s.NormalizedName
	}
	return s.Name
}

// CandidateProfile represents an ingested candidate as supplied by the surrounding application
type CandidateProfile struct {
	TenantID        uuid.UUID        `json:"tenant_id"`
	Name            string           `json:"name,omitempty"`
	Email           string           `json:"email,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Location        string           `json:"location,omitempty"`
	Title           string           `json:"title,omitempty"`
	Seniority       string           `json:"seniority,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	Skills          []CandidateSkill `json:"skills"`
	TrustScore      float64          `json:"trust_score,omitempty"`
	ParseConfidence float64          `json:"parse_confidence,omitempty"`
}

// CandidateSkill represents a normalized skill on a candidate profile
type CandidateSkill struct {
	Name           string  `json:"name"`
	NormalizedName string  `json:"normalized_name,omitempty"`
	Proficiency    string  `json:"proficiency,omitempty"`
	Years          float64 `json:"years,omitempty"`
}

// EffectiveName returns the normalized name when set, falling back to the raw name
func (s CandidateSkill) EffectiveName() string {
	if s.NormalizedName != "" {
		return s.NormalizedName
	}
	return s.Name
}

// SkillNames returns the effective names of all candidate skills
func (c *CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.EffectiveName())
	}
	return names
}

// HasContact reports whether the candidate has at least one contact channel
func (c *CandidateProfile) HasContact() bool {
	return c.Email != "" || c.Phone != ""
}
