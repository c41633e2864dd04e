// Package drift derives advisory tuning suggestions from the latest judgment
// aggregates. Every suggestion is gated on minimum sample sizes so sparse
// data never produces a false-confidence recommendation, and nothing here is
// ever applied automatically.
package drift

import (
	"fmt"
	"sort"

	"github.com/jonathan/talent-insights/internal/gating"
	"github.com/jonathan/talent-insights/internal/types"
)

// Guardrail is attached to every adjustment: tuning stays advisory and
// decisions stay with people.
const Guardrail = "This adjustment only tunes advisory weights and never auto-applies; hiring decisions remain human-owned."

// PlanAdjustments proposes at most three adjustment categories per dimension
// value from its latest-window insight. Pure: no I/O, deterministic output
// order (insight order, then defaults/tradeoffs/confidence).
func PlanAdjustments(insights []types.JudgmentInsight) []types.DriftAdjustment {
	var adjustments []types.DriftAdjustment

	for i := range insights {
		insight := &insights[i]
		if adjustment := planDefaults(insight); adjustment != nil {
			adjustments = append(adjustments, *adjustment)
		}
		if adjustment := planTradeoffs(insight); adjustment != nil {
			adjustments = append(adjustments, *adjustment)
		}
		if adjustment := planConfidence(insight); adjustment != nil {
			adjustments = append(adjustments, *adjustment)
		}
	}

	return adjustments
}

// planDefaults proposes loosening default screening when the segment's hire
// rate is strong enough over enough decisions
func planDefaults(insight *types.JudgmentInsight) *types.DriftAdjustment {
	hireRate := insight.HireRate
	if hireRate == nil {
		return nil
	}

	total := decisionTotal(insight)
	if total < gating.DefaultsMinDecisions || hireRate.Rate < gating.DefaultsMinHireRate {
		return nil
	}

	status := types.AdjustmentWatching
	if total >= gating.DefaultsApplyMinDecisions && hireRate.Rate >= gating.DefaultsApplyMinHireRate {
		status = types.AdjustmentApplied
	}

	return &types.DriftAdjustment{
		Dimension: insight.Dimension,
		Segment:   insight.DimensionValue,
		Category:  types.AdjustmentDefaults,
		Status:    status,
		Change:    "Favor submitting borderline candidates by default for this segment.",
		Rationale: fmt.Sprintf("Hire rate is %.0f%% across %d decisions in the latest window.", hireRate.Rate*100, total),
		Signals:   []string{types.MetricHireRate, types.MetricDecisionMix},
		Guardrail: Guardrail,
	}
}

// planTradeoffs proposes weighting recruiter overrides more when overridden
// decisions out-hire the baseline
func planTradeoffs(insight *types.JudgmentInsight) *types.DriftAdjustment {
	delta := insight.OverrideSuccessDelta
	if delta == nil {
		return nil
	}

	overrides := 0
	if insight.OverrideRate != nil {
		overrides = insight.OverrideRate.Overrides
	}
	if delta.Delta <= gating.TradeoffsMinDelta || overrides < gating.TradeoffsMinOverrides {
		return nil
	}

	status := types.AdjustmentWatching
	if overrides >= gating.TradeoffsApplyMinOverrides {
		status = types.AdjustmentApplied
	}

	return &types.DriftAdjustment{
		Dimension: insight.Dimension,
		Segment:   insight.DimensionValue,
		Category:  types.AdjustmentTradeoffs,
		Status:    status,
		Change:    "Give recruiter overrides more weight in ranking tradeoffs for this segment.",
		Rationale: fmt.Sprintf("Overridden decisions hire %.0f points above baseline (%d overrides in window).", delta.Delta*100, overrides),
		Signals:   []string{types.MetricOverrideSuccessDelta, types.MetricOverrideRate},
		Guardrail: Guardrail,
	}
}

// planConfidence proposes recalibrating the confidence bands when the
// top-performing band converts reliably
func planConfidence(insight *types.JudgmentInsight) *types.DriftAdjustment {
	bands := insight.ConfidenceBandSuccess
	if bands == nil || len(bands.Bands) == 0 {
		return nil
	}

	band, stats := TopBand(bands.Bands)
	if stats.Rate < gating.ConfidenceMinBandRate || stats.Total < gating.ConfidenceMinBandTotal {
		return nil
	}

	status := types.AdjustmentWatching
	if stats.Total >= gating.ConfidenceApplyMinBandTotal {
		status = types.AdjustmentApplied
	}

	return &types.DriftAdjustment{
		Dimension: insight.Dimension,
		Segment:   insight.DimensionValue,
		Category:  types.AdjustmentConfidence,
		Status:    status,
		Change:    fmt.Sprintf("Shift confidence weighting toward the %q band for this segment.", band),
		Rationale: fmt.Sprintf("The %q confidence band converts at %.0f%% over %d decisions.", band, stats.Rate*100, stats.Total),
		Signals:   []string{types.MetricConfidenceBandSuccess},
		Guardrail: Guardrail,
	}
}

// TopBand returns the best-performing confidence band. Ties on rate resolve
// to the larger sample, then alphabetically, so the pick is deterministic.
func TopBand(bands map[string]types.BandStats) (string, types.BandStats) {
	names := make([]string, 0, len(bands))
	for name := range bands {
		names = append(names, name)
	}
	sort.Strings(names)

	var topName string
	var top types.BandStats
	for _, name := range names {
		stats := bands[name]
		if topName == "" || stats.Rate > top.Rate || (stats.Rate == top.Rate && stats.Total > top.Total) {
			topName, top = name, stats
		}
	}
	return topName, top
}

func decisionTotal(insight *types.JudgmentInsight) int {
	if insight.DecisionMix != nil {
		return insight.DecisionMix.Total
	}
	return insight.SampleSize
}
