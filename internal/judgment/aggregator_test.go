package judgment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-insights/internal/types"
)

// memoryStore is an in-memory aggregation store with window-replace semantics
type memoryStore struct {
	mu       sync.Mutex
	tenants  []uuid.UUID
	receipts map[uuid.UUID][]types.DecisionReceipt
	// aggregates keyed by tenant + window bounds
	aggregates map[string][]types.JudgmentAggregate
	// failFor makes receipt loading fail for one tenant
	failFor uuid.UUID
	replaces int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		receipts:   make(map[uuid.UUID][]types.DecisionReceipt),
		aggregates: make(map[string][]types.JudgmentAggregate),
	}
}

func windowKey(tenantID uuid.UUID, start, end time.Time) string {
	return tenantID.String() + "/" + start.Format(time.RFC3339) + "/" + end.Format(time.RFC3339)
}

func (m *memoryStore) ListTenantIDs(context.Context) ([]uuid.UUID, error) {
	return m.tenants, nil
}

func (m *memoryStore) DecisionReceipts(_ context.Context, tenantID uuid.UUID, start, end time.Time) ([]types.DecisionReceipt, error) {
	if tenantID == m.failFor {
		return nil, errors.New("receipt feed unavailable")
	}

	var inWindow []types.DecisionReceipt
	for _, receipt := range m.receipts[tenantID] {
		if !receipt.CreatedAt.Before(start) && receipt.CreatedAt.Before(end) {
			inWindow = append(inWindow, receipt)
		}
	}
	return inWindow, nil
}

func (m *memoryStore) ReplaceAggregates(_ context.Context, tenantID uuid.UUID, start, end time.Time, rows []types.JudgmentAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	m.aggregates[windowKey(tenantID, start, end)] = rows
	return nil
}

func seedReceipts(store *memoryStore, tenantID uuid.UUID, createdAt time.Time, count int) {
	for i := 0; i < count; i++ {
		store.receipts[tenantID] = append(store.receipts[tenantID], types.DecisionReceipt{
			TenantID:     tenantID,
			FirmID:       "firm-1",
			DecisionType: types.DecisionSubmit,
			Outcome:      &types.DecisionOutcome{Hired: i%2 == 0},
			CreatedAt:    createdAt,
		})
	}
}

func TestRunWindow_AggregatesAllTenants(t *testing.T) {
	store := newMemoryStore()
	start, end := testWindowStart, testWindowEnd

	tenantA, tenantB := uuid.New(), uuid.New()
	store.tenants = []uuid.UUID{tenantA, tenantB}
	seedReceipts(store, tenantA, start.AddDate(0, 0, 3), 4)
	seedReceipts(store, tenantB, start.AddDate(0, 0, 5), 2)

	aggregator := NewAggregator(store, zap.NewNop())
	result, err := aggregator.RunWindow(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Tenants)
	assert.Equal(t, 2, result.Succeeded)
	assert.Zero(t, result.Failed)
	assert.Equal(t, 14, result.Rows, "7 metrics for one firm value per tenant")
}

func TestRunWindow_IsolatesTenantFailure(t *testing.T) {
	store := newMemoryStore()
	start, end := testWindowStart, testWindowEnd

	healthy, broken := uuid.New(), uuid.New()
	store.tenants = []uuid.UUID{broken, healthy}
	store.failFor = broken
	seedReceipts(store, healthy, start.AddDate(0, 0, 1), 3)

	aggregator := NewAggregator(store, zap.NewNop())
	result, err := aggregator.RunWindow(context.Background(), start, end)

	require.NoError(t, err, "one bad tenant must not abort the batch")
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.NotEmpty(t, store.aggregates[windowKey(healthy, start, end)])
}

func TestAggregateTenant_IdempotentReplace(t *testing.T) {
	store := newMemoryStore()
	start, end := testWindowStart, testWindowEnd
	tenantID := uuid.New()
	store.tenants = []uuid.UUID{tenantID}
	seedReceipts(store, tenantID, start.AddDate(0, 0, 2), 5)

	aggregator := NewAggregator(store, zap.NewNop())

	first, err := aggregator.AggregateTenant(context.Background(), tenantID, start, end)
	require.NoError(t, err)
	second, err := aggregator.AggregateTenant(context.Background(), tenantID, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rerun must produce the same row count")
	assert.Equal(t, 2, store.replaces)

	rows := store.aggregates[windowKey(tenantID, start, end)]
	assert.Len(t, rows, first, "no duplicated rows after rerun")
}

func TestAggregateTenant_OnlyWindowReceiptsCount(t *testing.T) {
	store := newMemoryStore()
	start, end := testWindowStart, testWindowEnd
	tenantID := uuid.New()

	seedReceipts(store, tenantID, start.AddDate(0, 0, 1), 2)       // inside
	seedReceipts(store, tenantID, start.AddDate(0, 0, -10), 3)     // before
	seedReceipts(store, tenantID, end.AddDate(0, 0, 1), 1)         // after

	aggregator := NewAggregator(store, zap.NewNop())
	_, err := aggregator.AggregateTenant(context.Background(), tenantID, start, end)
	require.NoError(t, err)

	rows := store.aggregates[windowKey(tenantID, start, end)]
	for _, row := range rows {
		if row.Metric == types.MetricDecisionMix {
			assert.Equal(t, 2, row.Value.(*types.DecisionMixValue).Total)
		}
	}
}

func TestPreviousWindow(t *testing.T) {
	refDate := time.Date(2026, 3, 4, 16, 45, 0, 0, time.UTC)

	start, end := PreviousWindow(refDate, 30)

	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), start)
}
