package judgment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-insights/internal/types"
)

// defaultConcurrency bounds how many tenants aggregate in parallel
const defaultConcurrency = 4

// Store is the persistence surface the aggregator runs against
type Store interface {
	// ListTenantIDs returns the tenants to aggregate
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)
	// DecisionReceipts returns a tenant's receipts created inside the window
	DecisionReceipts(ctx context.Context, tenantID uuid.UUID, windowStart, windowEnd time.Time) ([]types.DecisionReceipt, error)
	// ReplaceAggregates atomically replaces the tenant's aggregate rows for
	// the window with the given set
	ReplaceAggregates(ctx context.Context, tenantID uuid.UUID, windowStart, windowEnd time.Time, rows []types.JudgmentAggregate) error
}

// BatchResult summarizes one aggregation run across tenants
type BatchResult struct {
	Tenants   int
	Succeeded int
	Failed    int
	Rows      int
}

// Aggregator recomputes judgment aggregates for a window across all tenants.
// Tenants are processed independently: one tenant's failure is logged and
// counted, never propagated to the others.
type Aggregator struct {
	store       Store
	log         *zap.Logger
	concurrency int
}

// NewAggregator creates a batch aggregator
func NewAggregator(store Store, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, log: log, concurrency: defaultConcurrency}
}

// SetConcurrency overrides the number of tenants processed in parallel
func (a *Aggregator) SetConcurrency(n int) {
	if n > 0 {
		a.concurrency = n
	}
}

// RunWindow aggregates every tenant for the given window. The returned error
// covers only batch-level failures (listing tenants); per-tenant failures are
// reflected in the result counts.
func (a *Aggregator) RunWindow(ctx context.Context, windowStart, windowEnd time.Time) (BatchResult, error) {
	tenants, err := a.store.ListTenantIDs(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list tenants: %w", err)
	}

	result := BatchResult{Tenants: len(tenants)}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)

	for _, tenantID := range tenants {
		tenantID := tenantID
		group.Go(func() error {
			rows, err := a.AggregateTenant(groupCtx, tenantID, windowStart, windowEnd)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				a.log.Error("tenant aggregation failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Time("window_start", windowStart),
					zap.Time("window_end", windowEnd),
					zap.Error(err))
				return nil // log and continue; isolation over fail-fast
			}
			result.Succeeded++
			result.Rows += rows
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, err
	}

	a.log.Info("aggregation window complete",
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Int("tenants", result.Tenants),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Int("rows", result.Rows))

	return result, nil
}

// AggregateTenant recomputes one tenant's aggregate set for the window and
// replaces the stored rows in a single transaction. Returns the number of
// rows written.
func (a *Aggregator) AggregateTenant(ctx context.Context, tenantID uuid.UUID, windowStart, windowEnd time.Time) (int, error) {
	receipts, err := a.store.DecisionReceipts(ctx, tenantID, windowStart, windowEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to load receipts: %w", err)
	}

	rows := BuildAggregates(tenantID, receipts, windowStart, windowEnd)

	if err := a.store.ReplaceAggregates(ctx, tenantID, windowStart, windowEnd, rows); err != nil {
		return 0, fmt.Errorf("failed to replace aggregates: %w", err)
	}

	return len(rows), nil
}

// PreviousWindow returns the bounds of the most recent complete window of the
// given length: it ends at midnight UTC of the reference date and spans
// windowDays back from there.
func PreviousWindow(refDate time.Time, windowDays int) (time.Time, time.Time) {
	t := refDate.UTC()
	end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -windowDays), end
}
