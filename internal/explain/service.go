package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-insights/internal/llm"
	"github.com/jonathan/talent-insights/internal/types"
)

// Request carries everything the explanation generator needs, plus the cache
// identity of the match being explained.
type Request struct {
	TenantID    uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Mode        string
	Guardrails  map[string]any
	Job         *types.JobProfile
	Candidate   *types.CandidateProfile
	Breakdown   types.MatchScoreBreakdown
	Confidence  types.ConfidenceResult
	// Force bypasses the fingerprint check and always regenerates.
	Force bool
}

// Record is the persisted explanation for one job/candidate pair
type Record struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Version     int       `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
	Explanation string    `json:"explanation"`
	Fingerprint string    `json:"fingerprint"`
}

// Result is the outcome of an explanation request
type Result struct {
	Explanation string    `json:"explanation"`
	Version     int       `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
	Fingerprint string    `json:"fingerprint"`
	FromCache   bool      `json:"from_cache"`
	// Unavailable is set when the external generator failed; the match
	// pipeline keeps going without an explanation.
	Unavailable bool `json:"unavailable,omitempty"`
}

// Store persists explanations keyed by (tenant, job, candidate)
type Store interface {
	// GetExplanation returns the stored record, or nil when none exists
	GetExplanation(ctx context.Context, tenantID, jobID, candidateID uuid.UUID) (*Record, error)
	// UpsertExplanation inserts or overwrites the record for its key
	UpsertExplanation(ctx context.Context, record *Record) error
}

// Service caches explanations behind a content fingerprint.
//
// The read-check-then-write is not mutually exclusive: two concurrent callers
// with the same key may both invoke the generator, and the persisted record
// is decided by last write wins. The generator is near-deterministic for an
// identical fingerprint, so the duplicate work is tolerated rather than
// locked out.
type Service struct {
	store  Store
	client llm.Client
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates an explanation service
func NewService(store Store, client llm.Client, log *zap.Logger) *Service {
	return &Service{store: store, client: client, log: log, now: time.Now}
}

// Explain returns the cached explanation when the fingerprint still matches,
// otherwise invokes the external generator and persists the fresh result.
// Generator failures surface as an unavailable result, never as an error.
func (s *Service) Explain(ctx context.Context, req *Request) (*Result, error) {
	fingerprint, err := Fingerprint(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetExplanation(ctx, req.TenantID, req.JobID, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached explanation: %w", err)
	}

	if existing != nil && existing.Fingerprint == fingerprint && !req.Force {
		return &Result{
			Explanation: existing.Explanation,
			Version:     existing.Version,
			UpdatedAt:   existing.UpdatedAt,
			Fingerprint: existing.Fingerprint,
			FromCache:   true,
		}, nil
	}

	text, err := s.client.GenerateText(ctx, buildSystemPrompt(req.Mode), buildUserPrompt(req), llm.TierStandard)
	if err != nil {
		s.log.Warn("explanation generator failed",
			zap.String("tenant_id", req.TenantID.String()),
			zap.String("candidate_id", req.CandidateID.String()),
			zap.Error(err))
		return &Result{Unavailable: true, Fingerprint: fingerprint}, nil
	}

	record := &Record{
		TenantID:    req.TenantID,
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		Version:     1,
		UpdatedAt:   s.now().UTC(),
		Explanation: text,
		Fingerprint: fingerprint,
	}
	if existing != nil {
		record.Version = existing.Version + 1
	}

	if err := s.store.UpsertExplanation(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist explanation: %w", err)
	}

	return &Result{
		Explanation: record.Explanation,
		Version:     record.Version,
		UpdatedAt:   record.UpdatedAt,
		Fingerprint: record.Fingerprint,
	}, nil
}

func buildSystemPrompt(mode string) string {
	base := "You explain job/candidate match assessments to recruiters in plain language. " +
		"Be concrete, cite the provided scores, and never invent facts about the candidate."
	if mode != "" {
		return base + " Audience mode: " + mode + "."
	}
	return base
}

func buildUserPrompt(req *Request) string {
	var sb strings.Builder

	sb.WriteString("Explain this match assessment in two short paragraphs.\n\n")
	if req.Job != nil {
		fmt.Fprintf(&sb, "Role: %s (seniority: %s)\n", req.Job.Title, orUnknown(req.Job.Seniority))
		fmt.Fprintf(&sb, "Required skills: %s\n", strings.Join(req.Job.RequiredSkills(), ", "))
	}
	if req.Candidate != nil {
		fmt.Fprintf(&sb, "Candidate title: %s (seniority: %s)\n", orUnknown(req.Candidate.Title), orUnknown(req.Candidate.Seniority))
		fmt.Fprintf(&sb, "Candidate skills: %s\n", strings.Join(req.Candidate.SkillNames(), ", "))
	}
	fmt.Fprintf(&sb, "\nScores: skill overlap %d, title similarity %d, composite %d, confidence %d.\n",
		req.Breakdown.SkillOverlapScore, req.Breakdown.TitleSimilarityScore,
		req.Breakdown.CompositeScore, req.Confidence.ConfidenceScore)
	if len(req.Confidence.Reasons) > 0 {
		sb.WriteString("Assessment notes:\n")
		for _, reason := range req.Confidence.Reasons {
			sb.WriteString("- " + reason + "\n")
		}
	}

	return sb.String()
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
