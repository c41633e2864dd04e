package mqi

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-insights/internal/types"
)

type fakeQualityStore struct {
	funnel    types.FunnelCounts
	ratings   []string
	days      map[string][]float64 // keyed by since date, to separate window from baseline reads
	snapshots map[string][]types.MatchQualitySnapshot
	reads     int
	replaces  int
}

func newFakeQualityStore() *fakeQualityStore {
	return &fakeQualityStore{
		days:      make(map[string][]float64),
		snapshots: make(map[string][]types.MatchQualitySnapshot),
	}
}

func (f *fakeQualityStore) FunnelCounts(_ context.Context, _ uuid.UUID, _ types.QualityScope, _ string, _, _ time.Time) (types.FunnelCounts, error) {
	f.reads++
	return f.funnel, nil
}

func (f *fakeQualityStore) FeedbackRatings(_ context.Context, _ uuid.UUID, _ types.QualityScope, _ string, _, _ time.Time) ([]string, error) {
	f.reads++
	return f.ratings, nil
}

func (f *fakeQualityStore) DaysToHire(_ context.Context, _ uuid.UUID, _ types.QualityScope, _ string, since, _ time.Time) ([]float64, error) {
	f.reads++
	return f.days[since.Format("2006-01-02")], nil
}

func (f *fakeQualityStore) ReplaceSnapshots(_ context.Context, tenantID uuid.UUID, captureDate time.Time, snapshots []types.MatchQualitySnapshot) error {
	f.replaces++
	f.snapshots[tenantID.String()+"/"+captureDate.Format("2006-01-02")] = snapshots
	return nil
}

func TestCaptureWeekly_WritesConfiguredWindows(t *testing.T) {
	store := newFakeQualityStore()
	store.funnel = types.FunnelCounts{Shortlisted: 10, Interviewed: 5, Hired: 2}
	service := NewService(store, zap.NewNop())
	tenantID := uuid.New()

	// Wednesday 2026-03-04; the ISO week starts Monday 2026-03-02.
	refDate := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	count, err := service.CaptureWeekly(context.Background(), tenantID, types.ModeStandard, refDate)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, store.replaces)

	captured := store.snapshots[tenantID.String()+"/2026-03-02"]
	require.Len(t, captured, 3)
	assert.Equal(t, []int{30, 60, 90}, []int{captured[0].WindowDays, captured[1].WindowDays, captured[2].WindowDays})
	for _, snapshot := range captured {
		assert.Equal(t, types.ScopeTenant, snapshot.Scope)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), snapshot.CapturedAt)
	}
}

func TestCaptureWeekly_RestrictedModeSkipsEntirely(t *testing.T) {
	store := newFakeQualityStore()
	service := NewService(store, zap.NewNop())

	for _, mode := range []types.OperatingMode{types.ModeFireDrill, types.ModeDemo} {
		count, err := service.CaptureWeekly(context.Background(), uuid.New(), mode, time.Now())

		require.NoError(t, err)
		assert.Zero(t, count)
	}

	assert.Zero(t, store.reads, "restricted mode must not read any data")
	assert.Zero(t, store.replaces, "restricted mode must not write snapshots")
}

func TestCaptureWeekly_RerunReplacesSameCaptureDate(t *testing.T) {
	store := newFakeQualityStore()
	service := NewService(store, zap.NewNop())
	tenantID := uuid.New()
	refDate := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	_, err := service.CaptureWeekly(context.Background(), tenantID, types.ModeStandard, refDate)
	require.NoError(t, err)
	_, err = service.CaptureWeekly(context.Background(), tenantID, types.ModeStandard, refDate)
	require.NoError(t, err)

	// Both runs landed on the same capture key; the second replaced the first.
	assert.Len(t, store.snapshots, 1)
	assert.Len(t, store.snapshots[tenantID.String()+"/2026-03-02"], 3)
}

func TestISOWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"monday maps to itself", time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"wednesday maps back to monday", time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to preceding week", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ISOWeekStart(tt.input))
		})
	}
}
