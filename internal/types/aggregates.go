package types

import (
	"time"

	"github.com/google/uuid"
)

// Dimension identifies the grouping axis of a judgment aggregate
type Dimension string

// Dimension constants for judgment aggregation
const (
	DimensionFirm     Dimension = "firm"
	DimensionClient   Dimension = "client"
	DimensionRoleType Dimension = "role_type"
)

// Metric name constants for judgment aggregates. Exactly these seven metrics
// are emitted per (dimension, dimensionValue, window).
const (
	MetricDecisionMix           = "decision_mix"
	MetricHireRate              = "hire_rate"
	MetricOverrideRate          = "override_rate"
	MetricOverrideSuccessDelta  = "override_success_delta"
	MetricConfidenceBandSuccess = "confidence_band_success"
	MetricTenureAverage         = "tenure_average"
	MetricPerformanceAverage    = "performance_average"
)

// DecisionMixValue is the value shape of the decision_mix metric
type DecisionMixValue struct {
	Mix   map[string]int `json:"mix"`
	Total int            `json:"total"`
}

// HireRateValue is the value shape of the hire_rate metric.
// Decisions counts submit+override receipts, falling back to the full total
// when neither type was observed.
type HireRateValue struct {
	Hires     int     `json:"hires"`
	Decisions int     `json:"decisions"`
	Rate      float64 `json:"rate"`
}

// OverrideRateValue is the value shape of the override_rate metric
type OverrideRateValue struct {
	Overrides int     `json:"overrides"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// OverrideSuccessDeltaValue is the value shape of the override_success_delta metric
type OverrideSuccessDeltaValue struct {
	HiresFromOverrides int     `json:"hires_from_overrides"`
	OverrideRate       float64 `json:"override_rate"`
	OverrideHireRate   float64 `json:"override_hire_rate"`
	BaselineHireRate   float64 `json:"baseline_hire_rate"`
	Delta              float64 `json:"delta"`
}

// BandStats holds hire statistics for one confidence band
type BandStats struct {
	Hires int     `json:"hires"`
	Total int     `json:"total"`
	Rate  float64 `json:"rate"`
}

// ConfidenceBandSuccessValue is the value shape of the confidence_band_success metric
type ConfidenceBandSuccessValue struct {
	Bands map[string]BandStats `json:"bands"`
}

// OutcomeAverageValue is the value shape of the tenure_average and
// performance_average metrics. AverageValue is nil when there were no
// observations, never a division by zero.
type OutcomeAverageValue struct {
	AverageValue *float64 `json:"average_value"`
	Observations int      `json:"observations"`
}

// JudgmentAggregate is one materialized metric row for a
// (dimension, dimensionValue, metric, window) tuple. The full set for a
// window is replaced atomically on each aggregation run.
type JudgmentAggregate struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	Dimension      Dimension `json:"dimension"`
	DimensionValue string    `json:"dimension_value"`
	Metric         string    `json:"metric"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	Value          any       `json:"value"`
	SampleSize     int       `json:"sample_size"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// JudgmentInsight bundles the latest-window metric values for one dimension value
type JudgmentInsight struct {
	TenantID              uuid.UUID                   `json:"tenant_id"`
	Dimension             Dimension                   `json:"dimension"`
	DimensionValue        string                      `json:"dimension_value"`
	WindowStart           time.Time                   `json:"window_start"`
	WindowEnd             time.Time                   `json:"window_end"`
	SampleSize            int                         `json:"sample_size"`
	DecisionMix           *DecisionMixValue           `json:"decision_mix,omitempty"`
	HireRate              *HireRateValue              `json:"hire_rate,omitempty"`
	OverrideRate          *OverrideRateValue          `json:"override_rate,omitempty"`
	OverrideSuccessDelta  *OverrideSuccessDeltaValue  `json:"override_success_delta,omitempty"`
	ConfidenceBandSuccess *ConfidenceBandSuccessValue `json:"confidence_band_success,omitempty"`
	TenureAverage         *OutcomeAverageValue        `json:"tenure_average,omitempty"`
	PerformanceAverage    *OutcomeAverageValue        `json:"performance_average,omitempty"`
}

// AdjustmentCategory classifies a drift adjustment proposal
type AdjustmentCategory string

// AdjustmentStatus indicates whether an adjustment is active or still being observed
type AdjustmentStatus string

// Drift adjustment category and status constants
const (
	AdjustmentDefaults   AdjustmentCategory = "defaults"
	AdjustmentTradeoffs  AdjustmentCategory = "tradeoffs"
	AdjustmentConfidence AdjustmentCategory = "confidence"

	AdjustmentApplied  AdjustmentStatus = "applied"
	AdjustmentWatching AdjustmentStatus = "watching"
)

// DriftAdjustment is an advisory tuning suggestion derived from judgment
// aggregates. It is never persisted and never auto-applied.
type DriftAdjustment struct {
	Dimension Dimension          `json:"dimension"`
	Segment   string             `json:"segment"`
	Category  AdjustmentCategory `json:"category"`
	Status    AdjustmentStatus   `json:"status"`
	Change    string             `json:"change"`
	Rationale string             `json:"rationale"`
	Signals   []string           `json:"signals"`
	Guardrail string             `json:"guardrail"`
}

// DecisionCultureCue is a short contextual advisory message for a client or role context
type DecisionCultureCue struct {
	Context string `json:"context"`
	Message string `json:"message"`
}
