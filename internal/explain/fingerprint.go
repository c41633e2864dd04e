// Package explain guards the expensive external explanation call behind a
// content fingerprint, so unchanged match context never triggers a
// regeneration.
package explain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonathan/talent-insights/internal/parsing"
	"github.com/jonathan/talent-insights/internal/types"
)

// Fingerprint computes a stable hash over everything that should invalidate a
// cached explanation: mode, guardrail config, the normalized job and
// candidate contexts, and the match signals. Map keys are sorted by the JSON
// encoder, and skill lists are sorted explicitly, so field and input ordering
// never change the result.
func Fingerprint(req *Request) (string, error) {
	payload := map[string]any{
		"mode":       req.Mode,
		"guardrails": req.Guardrails,
		"job":        normalizedJobContext(req.Job),
		"candidate":  normalizedCandidateContext(req.Candidate),
		"signals": map[string]any{
			"skill_overlap":    req.Breakdown.SkillOverlapScore,
			"title_similarity": req.Breakdown.TitleSimilarityScore,
			"composite":        req.Breakdown.CompositeScore,
			"confidence":       req.Confidence.ConfidenceScore,
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode fingerprint payload: %w", err)
	}

	hash := sha256.Sum256(encoded)
	return hex.EncodeToString(hash[:]), nil
}

func normalizedJobContext(job *types.JobProfile) map[string]any {
	if job == nil {
		return map[string]any{}
	}

	var required, optional []string
	for _, skill := range job.Skills {
		name := parsing.NormalizeSkill(skill.EffectiveName())
		if name == "" {
			continue
		}
		if skill.Required {
			required = append(required, name)
		} else {
			optional = append(optional, name)
		}
	}
	sort.Strings(required)
	sort.Strings(optional)

	return map[string]any{
		"title":           parsing.NormalizeTitle(job.Title),
		"seniority":       parsing.NormalizeSeniority(job.Seniority),
		"location":        job.Location,
		"required_skills": required,
		"optional_skills": optional,
	}
}

func normalizedCandidateContext(candidate *types.CandidateProfile) map[string]any {
	if candidate == nil {
		return map[string]any{}
	}

	var skills []string
	for _, skill := range candidate.Skills {
		if name := parsing.NormalizeSkill(skill.EffectiveName()); name != "" {
			skills = append(skills, name)
		}
	}
	sort.Strings(skills)

	return map[string]any{
		"title":       parsing.NormalizeTitle(candidate.Title),
		"seniority":   parsing.NormalizeSeniority(candidate.Seniority),
		"location":    candidate.Location,
		"skills":      skills,
		"has_summary": candidate.Summary != "",
		"has_contact": candidate.HasContact(),
	}
}
