package types

import (
	"time"

	"github.com/google/uuid"
)

// DecisionType classifies a recorded hiring decision
type DecisionType string

// Decision type constants for recorded hiring decisions
const (
	DecisionSubmit               DecisionType = "submit"
	DecisionReject               DecisionType = "reject"
	DecisionOverride             DecisionType = "override"
	DecisionConfidenceAdjustment DecisionType = "confidence_adjustment"
)

// Valid reports whether the decision type is one of the known values
func (d DecisionType) Valid() bool {
	switch d {
	case DecisionSubmit, DecisionReject, DecisionOverride, DecisionConfidenceAdjustment:
		return true
	}
	return false
}

// DecisionSignals holds the known optional keys of a receipt's signal payload.
// Unknown keys from the raw payload are dropped during validation rather than
// carried as an untyped blob.
type DecisionSignals struct {
	ConfidenceBand  string `json:"confidence_band,omitempty"`
	ConfidenceScore *int   `json:"confidence_score,omitempty"`
	MatchScore      *int   `json:"match_score,omitempty"`
}

// OverrideNote records a human override of a system recommendation.
// Its presence on a receipt is what marks the decision as an override.
type OverrideNote struct {
	Actor  string `json:"actor,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DecisionOutcome records what eventually happened after a decision
type DecisionOutcome struct {
	Hired             bool     `json:"hired"`
	TenureDays        *int     `json:"tenure_days,omitempty"`
	PerformanceRating *float64 `json:"performance_rating,omitempty"`
}

// DecisionReceipt is a tenant-scoped record of one hiring decision.
// Receipts are created by the surrounding application and are immutable;
// this core only ever reads them.
type DecisionReceipt struct {
	ID           uuid.UUID        `json:"id"`
	TenantID     uuid.UUID        `json:"tenant_id" validate:"required"`
	FirmID       string           `json:"firm_id" validate:"required"`
	ClientID     string           `json:"client_id,omitempty"`
	RoleType     string           `json:"role_type,omitempty"`
	DecisionType DecisionType     `json:"decision_type" validate:"required"`
	Signals      DecisionSignals  `json:"signals"`
	Override     *OverrideNote    `json:"human_override,omitempty"`
	Outcome      *DecisionOutcome `json:"outcome,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// IsOverride reports whether a human override was recorded on this receipt
func (r *DecisionReceipt) IsOverride() bool {
	return r.Override != nil
}

// WasHired reports whether the receipt carries a hired outcome
func (r *DecisionReceipt) WasHired() bool {
	return r.Outcome != nil && r.Outcome.Hired
}
