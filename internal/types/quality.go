package types

import (
	"time"

	"github.com/google/uuid"
)

// QualityScope identifies what a match quality snapshot covers
type QualityScope string

// Quality scope constants
const (
	ScopeTenant    QualityScope = "tenant"
	ScopeJob       QualityScope = "job"
	ScopeRecruiter QualityScope = "recruiter"
)

// QualityComponents holds the four normalized [0,1] components of the
// match quality index
type QualityComponents struct {
	ShortlistToInterviewRate float64 `json:"shortlist_to_interview_rate"`
	InterviewToHireRate      float64 `json:"interview_to_hire_rate"`
	AverageCandidateFeedback float64 `json:"average_candidate_feedback"`
	TimeToFillScore          float64 `json:"time_to_fill_score"`
}

// MatchQualitySnapshot is one captured MQI value for a scope and window.
// Captures for a given capture date are replaced wholesale so reruns stay
// idempotent.
type MatchQualitySnapshot struct {
	ID         uuid.UUID         `json:"id"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	Scope      QualityScope      `json:"scope"`
	ScopeRef   string            `json:"scope_ref,omitempty"`
	WindowDays int               `json:"window_days"`
	MQI        float64           `json:"mqi"`
	Components QualityComponents `json:"components"`
	CapturedAt time.Time         `json:"captured_at"`
}

// FunnelCounts holds the hiring funnel tallies for a window
type FunnelCounts struct {
	Shortlisted int `json:"shortlisted"`
	Interviewed int `json:"interviewed"`
	Hired       int `json:"hired"`
}
