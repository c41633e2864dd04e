// Package mqi computes the match quality index: a windowed composite of
// funnel conversion, candidate feedback, and time-to-fill performance.
package mqi

import (
	"math"

	"github.com/jonathan/talent-insights/internal/types"
)

// Component weights for the match quality index
const (
	weightShortlistToInterview = 0.3
	weightInterviewToHire      = 0.3
	weightFeedback             = 0.2
	weightTimeToFill           = 0.2
)

// Neutral defaults for missing data
const (
	neutralComponent = 0.5
	// DefaultBaselineDays is the assumed days-to-hire baseline when no
	// trailing samples exist.
	DefaultBaselineDays = 45.0
	// DefaultBaselineLookbackDays is how far back the baseline mean looks.
	DefaultBaselineLookbackDays = 180
)

// DefaultCaptureWindows are the window lengths captured by the weekly run
var DefaultCaptureWindows = []int{30, 60, 90}

// Inputs holds the raw window data the index is computed from
type Inputs struct {
	Funnel          types.FunnelCounts
	FeedbackRatings []string
	// DaysToHire holds days-to-hire for hires inside the window.
	DaysToHire []float64
	// BaselineDaysToHire holds days-to-hire for the trailing baseline period.
	BaselineDaysToHire []float64
}

// Compute derives the four normalized components and the 0-100 index value
// (one decimal place). Empty denominators and missing data yield the
// documented neutral defaults, never NaN.
func Compute(inputs Inputs) (float64, types.QualityComponents) {
	components := types.QualityComponents{
		ShortlistToInterviewRate: safeRate(inputs.Funnel.Interviewed, inputs.Funnel.Shortlisted),
		InterviewToHireRate:      safeRate(inputs.Funnel.Hired, inputs.Funnel.Interviewed),
		AverageCandidateFeedback: feedbackScore(inputs.FeedbackRatings),
		TimeToFillScore:          timeToFillScore(inputs.DaysToHire, inputs.BaselineDaysToHire),
	}

	weighted := components.ShortlistToInterviewRate*weightShortlistToInterview +
		components.InterviewToHireRate*weightInterviewToHire +
		components.AverageCandidateFeedback*weightFeedback +
		components.TimeToFillScore*weightTimeToFill

	return math.Round(1000*weighted) / 10, components
}

// safeRate returns numerator/denominator clamped to [0,1], or 0 when the
// denominator is zero
func safeRate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return clamp01(float64(numerator) / float64(denominator))
}

// feedbackScore maps each rating to 1 ("up"), 0 ("down"), or 0.5 (anything
// else) and averages. No feedback at all is neutral 0.5.
func feedbackScore(ratings []string) float64 {
	if len(ratings) == 0 {
		return neutralComponent
	}

	total := 0.0
	for _, rating := range ratings {
		switch rating {
		case "up":
			total += 1.0
		case "down":
			total += 0.0
		default:
			total += neutralComponent
		}
	}

	return clamp01(total / float64(len(ratings)))
}

// timeToFillScore compares the window's mean days-to-hire against the
// trailing baseline mean. Matching the baseline scores 0.5; shorter fills
// push toward 1, longer fills toward 0. No in-window hires is neutral 0.5.
func timeToFillScore(actual, baseline []float64) float64 {
	if len(actual) == 0 {
		return neutralComponent
	}

	baselineMean := DefaultBaselineDays
	if len(baseline) > 0 {
		baselineMean = mean(baseline)
	}
	if baselineMean <= 0 {
		return neutralComponent
	}

	ratio := (baselineMean - mean(actual)) / baselineMean
	normalized := math.Min(math.Max(ratio+1, 0), 2)
	return normalized / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func clamp01(value float64) float64 {
	return math.Min(math.Max(value, 0), 1)
}
