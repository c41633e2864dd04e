package mqi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-insights/internal/types"
)

// Store supplies the window data behind the index and persists snapshots
type Store interface {
	// FunnelCounts returns shortlist/interview/hire tallies for the window
	FunnelCounts(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) (types.FunnelCounts, error)
	// FeedbackRatings returns the raw feedback ratings recorded in the window
	FeedbackRatings(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) ([]string, error)
	// DaysToHire returns days-to-hire values for hires inside the range
	DaysToHire(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) ([]float64, error)
	// ReplaceSnapshots atomically replaces the tenant's snapshots for a capture date
	ReplaceSnapshots(ctx context.Context, tenantID uuid.UUID, captureDate time.Time, snapshots []types.MatchQualitySnapshot) error
}

// Service computes match quality snapshots over a store
type Service struct {
	store        Store
	log          *zap.Logger
	lookbackDays int
	windows      []int
}

// NewService creates an MQI service with the default baseline lookback and
// capture windows
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{
		store:        store,
		log:          log,
		lookbackDays: DefaultBaselineLookbackDays,
		windows:      DefaultCaptureWindows,
	}
}

// Snapshot computes one MQI snapshot for the given scope and window, anchored
// at refDate
func (s *Service) Snapshot(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, windowDays int, refDate time.Time) (*types.MatchQualitySnapshot, error) {
	until := refDate
	since := until.AddDate(0, 0, -windowDays)

	funnel, err := s.store.FunnelCounts(ctx, tenantID, scope, scopeRef, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to load funnel counts: %w", err)
	}
	ratings, err := s.store.FeedbackRatings(ctx, tenantID, scope, scopeRef, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	actualDays, err := s.store.DaysToHire(ctx, tenantID, scope, scopeRef, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to load days to hire: %w", err)
	}
	baselineDays, err := s.store.DaysToHire(ctx, tenantID, scope, scopeRef, since.AddDate(0, 0, -s.lookbackDays), since)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline days to hire: %w", err)
	}

	value, components := Compute(Inputs{
		Funnel:             funnel,
		FeedbackRatings:    ratings,
		DaysToHire:         actualDays,
		BaselineDaysToHire: baselineDays,
	})

	return &types.MatchQualitySnapshot{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Scope:      scope,
		ScopeRef:   scopeRef,
		WindowDays: windowDays,
		MQI:        value,
		Components: components,
		CapturedAt: refDate,
	}, nil
}

// SetLookbackDays overrides the baseline lookback window
func (s *Service) SetLookbackDays(days int) {
	if days > 0 {
		s.lookbackDays = days
	}
}

// CaptureWeekly computes tenant-scope snapshots for the configured windows,
// anchored to the ISO week start of refDate, and replaces any snapshots
// already captured for that date. Restricted operating modes skip the capture
// entirely without reading any data. Returns the number of snapshots written.
func (s *Service) CaptureWeekly(ctx context.Context, tenantID uuid.UUID, mode types.OperatingMode, refDate time.Time) (int, error) {
	if mode.Restricted() {
		s.log.Info("skipping match quality capture in restricted mode",
			zap.String("tenant_id", tenantID.String()),
			zap.String("mode", string(mode)))
		return 0, nil
	}

	weekStart := ISOWeekStart(refDate)

	snapshots := make([]types.MatchQualitySnapshot, 0, len(s.windows))
	for _, windowDays := range s.windows {
		snapshot, err := s.Snapshot(ctx, tenantID, types.ScopeTenant, "", windowDays, weekStart)
		if err != nil {
			return 0, fmt.Errorf("failed to compute %d-day snapshot: %w", windowDays, err)
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := s.store.ReplaceSnapshots(ctx, tenantID, weekStart, snapshots); err != nil {
		return 0, fmt.Errorf("failed to persist snapshots: %w", err)
	}

	s.log.Info("captured match quality snapshots",
		zap.String("tenant_id", tenantID.String()),
		zap.Time("week_start", weekStart),
		zap.Int("count", len(snapshots)))

	return len(snapshots), nil
}

// ISOWeekStart returns midnight UTC of the Monday of refDate's ISO week
func ISOWeekStart(refDate time.Time) time.Time {
	t := refDate.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding ISO week
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
