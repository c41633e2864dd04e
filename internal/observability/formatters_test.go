package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-insights/internal/types"
)

func TestPrintMatchScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobProfile{Title: "Data Engineer"}
	p.PrintMatchScore(job, types.MatchScoreBreakdown{
		SkillOverlapScore:    90,
		TitleSimilarityScore: 80,
		CompositeScore:       86,
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE")
	assert.Contains(t, output, "Data Engineer")
	assert.Contains(t, output, "90")
	assert.Contains(t, output, "86")
}

func TestPrintConfidence(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintConfidence(types.ConfidenceResult{
		ConfidenceScore: 96,
		Reasons: []string{
			"All required skills are covered.",
			"Seniority matches the role exactly (mid).",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CONFIDENCE")
	assert.Contains(t, output, "96 / 100")
	assert.Contains(t, output, "required skills")
}

func TestPrintConfidence_TruncatesReasons(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reasons := make([]string, 8)
	for i := range reasons {
		reasons[i] = "Reason text"
	}
	p.PrintConfidence(types.ConfidenceResult{ConfidenceScore: 50, Reasons: reasons})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintCues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCues([]types.DecisionCultureCue{
		{Context: "acme-corp", Message: "Overrides for this client have out-hired baseline decisions."},
	})
	output := buf.String()

	assert.Contains(t, output, "DECISION CULTURE CUES")
	assert.Contains(t, output, "acme-corp")
}

func TestPrintCues_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCues(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAdjustments(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAdjustments([]types.DriftAdjustment{
		{
			Category: types.AdjustmentDefaults,
			Segment:  "firm-1",
			Status:   types.AdjustmentApplied,
			Change:   "Relax default screening strictness for this segment.",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "DRIFT PROPOSALS")
	assert.Contains(t, output, "firm-1")
}
