// Package gating centralizes the sample-size and rate thresholds that gate
// drift adjustments, culture cues, and benchmark cohorts. Keeping them in one
// place keeps the gating policy auditable.
package gating

// Drift planner thresholds
const (
	// DefaultsMinDecisions is the minimum decision count before a defaults
	// adjustment is proposed at all.
	DefaultsMinDecisions = 3
	// DefaultsMinHireRate is the minimum hire rate for a defaults proposal.
	DefaultsMinHireRate = 0.5
	// DefaultsApplyMinDecisions is the decision count at which a defaults
	// proposal graduates from watching to applied.
	DefaultsApplyMinDecisions = 20
	// DefaultsApplyMinHireRate is the hire rate required to apply.
	DefaultsApplyMinHireRate = 0.55

	// TradeoffsMinDelta is the minimum override-success lift over baseline.
	TradeoffsMinDelta = 0.05
	// TradeoffsMinOverrides is the minimum override sample to propose.
	TradeoffsMinOverrides = 1
	// TradeoffsApplyMinOverrides is the override sample required to apply.
	TradeoffsApplyMinOverrides = 8

	// ConfidenceMinBandRate is the minimum hire rate of the top band.
	ConfidenceMinBandRate = 0.55
	// ConfidenceMinBandTotal is the minimum top-band sample to propose.
	ConfidenceMinBandTotal = 3
	// ConfidenceApplyMinBandTotal is the top-band sample required to apply.
	ConfidenceApplyMinBandTotal = 10
)

// Culture cue thresholds
const (
	// CueMinSample is the minimum sample size behind any cue signal.
	CueMinSample = 8
	// CueMixShareThreshold is the minimum confidence_adjustment share of the
	// decision mix for the recalibration cue.
	CueMixShareThreshold = 0.10
	// MaxCues caps how many cues a single context returns.
	MaxCues = 2
)

// Benchmark cohort buckets, derived from sample size
const (
	// CohortEmergingMax is the exclusive upper bound of the emerging cohort.
	CohortEmergingMax = 75
	// CohortGrowthMax is the exclusive upper bound of the growth cohort.
	CohortGrowthMax = 200
)

// Cohort names the sample-size bucket used for size-basis benchmarking
func Cohort(sampleSize int) string {
	switch {
	case sampleSize < CohortEmergingMax:
		return "emerging"
	case sampleSize < CohortGrowthMax:
		return "growth"
	default:
		return "enterprise"
	}
}
