// Package scoring computes match score breakdowns and confidence assessments
// for a candidate against a job. All functions are pure and empty-safe.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/talent-insights/internal/parsing"
	"github.com/jonathan/talent-insights/internal/types"
)

// Default weights for the composite match score
const (
	skillOverlapWeight    = 0.7
	titleSimilarityWeight = 0.3
)

// Title similarity tiers
const (
	titleExactScore    = 100
	titleContainsScore = 80
	titleDefaultScore  = 30
)

// ScoreMatch computes the match score breakdown for a candidate against a job.
// Every component is an integer in [0,100]; missing inputs degrade to zero
// rather than erroring.
func ScoreMatch(job *types.JobProfile, candidate *types.CandidateProfile) types.MatchScoreBreakdown {
	skillScore := computeSkillOverlapScore(job, candidate)
	titleScore := computeTitleSimilarityScore(job, candidate)

	composite := roundScore(float64(skillScore)*skillOverlapWeight + float64(titleScore)*titleSimilarityWeight)

	return types.MatchScoreBreakdown{
		SkillOverlapScore:    skillScore,
		TitleSimilarityScore: titleScore,
		CompositeScore:       composite,
	}
}

// computeSkillOverlapScore returns the Jaccard similarity of the normalized
// skill sets, scaled to [0,100]. Either side empty yields 0.
func computeSkillOverlapScore(job *types.JobProfile, candidate *types.CandidateProfile) int {
	jobSet := parsing.SkillSet(job.SkillNames())
	candidateSet := parsing.SkillSet(candidate.SkillNames())

	if len(jobSet) == 0 || len(candidateSet) == 0 {
		return 0
	}

	intersection := 0
	for skill := range jobSet {
		if candidateSet[skill] {
			intersection++
		}
	}

	union := len(jobSet) + len(candidateSet) - intersection
	if union == 0 {
		return 0
	}

	return roundScore(100 * float64(intersection) / float64(union))
}

// computeTitleSimilarityScore compares normalized titles: exact match scores
// 100, substring containment 80, anything else 30. A missing candidate title
// scores 0.
func computeTitleSimilarityScore(job *types.JobProfile, candidate *types.CandidateProfile) int {
	candidateTitle := parsing.NormalizeTitle(candidate.Title)
	if candidateTitle == "" {
		return 0
	}

	jobTitle := job.NormalizedTitle
	if jobTitle == "" {
		jobTitle = parsing.NormalizeTitle(job.Title)
	} else {
		jobTitle = parsing.NormalizeTitle(jobTitle)
	}
	if jobTitle == "" {
		return titleDefaultScore
	}

	if jobTitle == candidateTitle {
		return titleExactScore
	}
	if containsEither(jobTitle, candidateTitle) {
		return titleContainsScore
	}
	return titleDefaultScore
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// roundScore rounds to the nearest integer and clamps into [0,100]
func roundScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
