package scoring

import (
	"strings"
	"testing"

	"github.com/jonathan/talent-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsJob() *types.JobProfile {
	return &types.JobProfile{
		Title:     "Data Engineer",
		Seniority: "mid",
		Skills: []types.JobSkill{
			{Name: "Python", Required: true},
			{Name: "SQL", Required: true},
			{Name: "Airflow", Required: false},
		},
	}
}

func TestAssessConfidence_LowQualityCandidate(t *testing.T) {
	candidate := &types.CandidateProfile{}
	breakdown := ScoreMatch(analyticsJob(), candidate)

	result := AssessConfidence(breakdown, analyticsJob(), candidate)

	assert.Less(t, result.ConfidenceScore, 40)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0)

	joined := strings.ToLower(strings.Join(result.Reasons, " "))
	assert.Contains(t, joined, "missing")
	assert.Contains(t, joined, "required skills")
	assert.Contains(t, joined, "seniority")
}

func TestAssessConfidence_StrongCandidate(t *testing.T) {
	candidate := &types.CandidateProfile{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Location:  "London",
		Title:     "Data Engineer",
		Seniority: "Mid",
		Summary:   "Analytical engineer with strong pipeline experience.",
		Skills: []types.CandidateSkill{
			{Name: "Python"},
			{Name: "SQL"},
			{Name: "Airflow"},
		},
	}
	breakdown := types.MatchScoreBreakdown{SkillOverlapScore: 90, TitleSimilarityScore: 80, CompositeScore: 86}

	result := AssessConfidence(breakdown, analyticsJob(), candidate)

	assert.Greater(t, result.ConfidenceScore, 80)
	assert.LessOrEqual(t, result.ConfidenceScore, 100)
	assert.Contains(t, result.Reasons, "Seniority matches the role exactly (mid).")
}

func TestAssessConfidence_AlwaysHasCoverageAndSeniorityReasons(t *testing.T) {
	result := AssessConfidence(types.MatchScoreBreakdown{}, &types.JobProfile{}, &types.CandidateProfile{})

	require.NotEmpty(t, result.Reasons)
	joined := strings.ToLower(strings.Join(result.Reasons, " "))
	assert.Contains(t, joined, "overlap")
	assert.Contains(t, joined, "seniority")
}

func TestAssessConfidence_SeniorityTiers(t *testing.T) {
	tests := []struct {
		name               string
		jobSeniority       string
		candidateSeniority string
		wantReasonPart     string
	}{
		{"exact match ignores case", "Senior", "senior", "matches the role exactly"},
		{"mismatch", "senior", "junior", "differs from the role"},
		{"one sided", "senior", "", "only known on one side"},
		{"neither", "", "", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &types.JobProfile{Seniority: tt.jobSeniority}
			candidate := &types.CandidateProfile{Seniority: tt.candidateSeniority}

			result := AssessConfidence(types.MatchScoreBreakdown{}, job, candidate)

			found := false
			for _, reason := range result.Reasons {
				if strings.Contains(strings.ToLower(reason), tt.wantReasonPart) {
					found = true
				}
			}
			assert.True(t, found, "expected a reason containing %q, got %v", tt.wantReasonPart, result.Reasons)
		})
	}
}

func TestAssessConfidence_Deterministic(t *testing.T) {
	candidate := &types.CandidateProfile{
		Name:      "Sam Chen",
		Seniority: "senior",
		Skills:    []types.CandidateSkill{{Name: "Go"}},
	}
	breakdown := types.MatchScoreBreakdown{SkillOverlapScore: 50, TitleSimilarityScore: 30, CompositeScore: 44}

	first := AssessConfidence(breakdown, analyticsJob(), candidate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AssessConfidence(breakdown, analyticsJob(), candidate))
	}
}

func TestAssessConfidence_Bounds(t *testing.T) {
	// A contradiction-heavy profile must clamp at 0, never go negative.
	result := AssessConfidence(types.MatchScoreBreakdown{}, analyticsJob(), &types.CandidateProfile{Seniority: "executive"})

	assert.GreaterOrEqual(t, result.ConfidenceScore, 0)
	assert.LessOrEqual(t, result.ConfidenceScore, 100)
}

func TestComputeCompletenessScore(t *testing.T) {
	full := &types.CandidateProfile{
		Name:     "Ada",
		Location: "London",
		Title:    "Engineer",
		Phone:    "555-0100",
		Summary:  "Engineer.",
		Skills:   []types.CandidateSkill{{Name: "Go"}},
	}

	score, missing := computeCompletenessScore(full)
	assert.InDelta(t, 25.0, score, 0.001)
	assert.Empty(t, missing)

	score, missing = computeCompletenessScore(&types.CandidateProfile{})
	assert.Zero(t, score)
	assert.Len(t, missing, 6)
}
