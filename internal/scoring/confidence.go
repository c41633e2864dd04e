package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/talent-insights/internal/parsing"
	"github.com/jonathan/talent-insights/internal/types"
)

// Confidence component caps
const (
	skillCoverageCap         = 40.0
	seniorityCap             = 20.0
	completenessCap          = 25.0
	compositeContributionCap = 15.0
	compositeContribWeight   = 0.15
)

// Seniority component tiers
const (
	seniorityExactScore   = 20.0
	seniorityMismatch     = 10.0
	seniorityOneSided     = 14.0
	seniorityNeutralScore = 10.0
)

// Contradiction penalties
const (
	penaltySeniorityConflict = 7.0
	penaltyNoSkills          = 8.0
	penaltyNoName            = 5.0
)

// completenessFieldCount is the number of candidate fields checked for the
// completeness component: name, location, title, contact, skills, summary.
const completenessFieldCount = 6

// AssessConfidence derives a confidence score and human-readable reasons from
// a match score breakdown plus the underlying profiles. Missing data degrades
// to neutral component scores; the result always carries at least one skill
// coverage reason and one seniority reason.
func AssessConfidence(breakdown types.MatchScoreBreakdown, job *types.JobProfile, candidate *types.CandidateProfile) types.ConfidenceResult {
	var reasons []string

	coverage, coverageReason := computeSkillCoverage(breakdown, job, candidate)
	reasons = append(reasons, coverageReason)

	seniority, seniorityReason := computeSeniorityScore(job, candidate)
	reasons = append(reasons, seniorityReason)

	completeness, missing := computeCompletenessScore(candidate)
	populated := completenessFieldCount - len(missing)
	reasons = append(reasons, fmt.Sprintf("Profile completeness: %d of %d fields populated.", populated, completenessFieldCount))
	if len(missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("Missing data: %s.", strings.Join(missing, ", ")))
	}

	contribution := float64(breakdown.CompositeScore) * compositeContribWeight
	if contribution > compositeContributionCap {
		contribution = compositeContributionCap
	}
	reasons = append(reasons, fmt.Sprintf("Overall match score of %d contributes %.1f points.", breakdown.CompositeScore, contribution))

	penalty := computeContradictionPenalty(job, candidate)
	if penalty > 0 {
		reasons = append(reasons, fmt.Sprintf("Confidence reduced by %.0f points for contradictory or absent profile data.", penalty))
	}

	score := coverage + seniority + completeness + contribution - penalty

	return types.ConfidenceResult{
		ConfidenceScore: roundScore(score),
		Reasons:         reasons,
	}
}

// computeSkillCoverage averages the required-skill hit fraction with the
// overall skill overlap, scaled into [0,40]. Jobs with no required skills
// fall back to the overlap fraction alone.
func computeSkillCoverage(breakdown types.MatchScoreBreakdown, job *types.JobProfile, candidate *types.CandidateProfile) (float64, string) {
	overlapFraction := float64(breakdown.SkillOverlapScore) / 100.0
	candidateSet := parsing.SkillSet(candidate.SkillNames())

	required := job.RequiredSkills()
	requiredFraction := overlapFraction
	matched := 0
	if len(required) > 0 {
		for _, skill := range required {
			if candidateSet[parsing.NormalizeSkill(skill)] {
				matched++
			}
		}
		requiredFraction = float64(matched) / float64(len(required))
	}

	score := clampFloat((requiredFraction+overlapFraction)/2*skillCoverageCap, 0, skillCoverageCap)

	var reason string
	switch {
	case len(required) == 0:
		reason = fmt.Sprintf("No required skills on the job; skill coverage based on %d%% overall overlap.", breakdown.SkillOverlapScore)
	case matched == len(required):
		reason = fmt.Sprintf("Candidate covers all %d required skills (overall overlap %d%%).", len(required), breakdown.SkillOverlapScore)
	default:
		reason = fmt.Sprintf("Candidate covers %d of %d required skills (overall overlap %d%%).", matched, len(required), breakdown.SkillOverlapScore)
	}

	return score, reason
}

// computeSeniorityScore compares normalized seniority labels: exact match 20,
// both present but different 10, only one side present 14, neither present 10.
func computeSeniorityScore(job *types.JobProfile, candidate *types.CandidateProfile) (float64, string) {
	jobSeniority := parsing.NormalizeSeniority(job.Seniority)
	candidateSeniority := parsing.NormalizeSeniority(candidate.Seniority)

	switch {
	case jobSeniority != "" && candidateSeniority != "" && jobSeniority == candidateSeniority:
		return seniorityExactScore, fmt.Sprintf("Seniority matches the role exactly (%s).", candidateSeniority)
	case jobSeniority != "" && candidateSeniority != "":
		return seniorityMismatch, fmt.Sprintf("Candidate seniority (%s) differs from the role (%s).", candidateSeniority, jobSeniority)
	case jobSeniority != "" || candidateSeniority != "":
		return seniorityOneSided, "Seniority is only known on one side; treated as close to neutral."
	default:
		return seniorityNeutralScore, "No seniority information on either side; treated as neutral."
	}
}

// computeCompletenessScore scores how fully the candidate profile is
// populated across six fields, returning the names of missing fields.
func computeCompletenessScore(candidate *types.CandidateProfile) (float64, []string) {
	var missing []string

	checks := []struct {
		name      string
		populated bool
	}{
		{"name", candidate.Name != ""},
		{"location", candidate.Location != ""},
		{"title", candidate.Title != ""},
		{"contact", candidate.HasContact()},
		{"skills", len(candidate.Skills) > 0},
		{"summary", candidate.Summary != ""},
	}

	populated := 0
	for _, check := range checks {
		if check.populated {
			populated++
		} else {
			missing = append(missing, check.name)
		}
	}

	score := float64(populated) / completenessFieldCount * completenessCap
	return score, missing
}

// computeContradictionPenalty sums penalties for conflicting seniority, an
// empty skill list, and a missing name. The sum is applied before the final
// clamp, so a heavily penalized profile can bottom out at zero.
func computeContradictionPenalty(job *types.JobProfile, candidate *types.CandidateProfile) float64 {
	penalty := 0.0

	jobSeniority := parsing.NormalizeSeniority(job.Seniority)
	candidateSeniority := parsing.NormalizeSeniority(candidate.Seniority)
	if jobSeniority != "" && candidateSeniority != "" && jobSeniority != candidateSeniority {
		penalty += penaltySeniorityConflict
	}
	if len(candidate.Skills) == 0 {
		penalty += penaltyNoSkills
	}
	if candidate.Name == "" {
		penalty += penaltyNoName
	}

	return penalty
}

func clampFloat(value, low, high float64) float64 {
	return math.Min(math.Max(value, low), high)
}
