// Package benchmark produces cross-tenant, privacy-preserving comparisons of
// a tenant's signals against anonymized peer medians. Everything is gated
// behind the tenant's explicit cross-tenant opt-in.
package benchmark

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/talent-insights/internal/gating"
	"github.com/jonathan/talent-insights/internal/types"
)

// DefaultWindowDays is the benchmark window when the caller does not pick one
const DefaultWindowDays = 90

// optOutNote explains the empty result for tenants that have not opted in
const optOutNote = "Cross-tenant benchmarking requires opt-in to shared learning. No peer data was accessed for this request."

// Store is the read surface for benchmarking. Signal reads must not happen
// before the opt-in gate passes.
type Store interface {
	// TenantSettings returns the tenant's configuration, or nil when unknown
	TenantSettings(ctx context.Context, tenantID uuid.UUID) (*types.TenantSettings, error)
	// LatestSignals returns the tenant's most recent value per signal type
	LatestSignals(ctx context.Context, tenantID uuid.UUID, windowDays int, roleFamily string) ([]types.BenchmarkSignal, error)
	// LatestGeneration returns the cross-tenant aggregate rows sharing the
	// most recent creation time for the signal type, window, and role family
	LatestGeneration(ctx context.Context, signalType string, windowDays int, roleFamily string) ([]types.BenchmarkAggregate, error)
}

// Service computes client-relative benchmarks over a store
type Service struct {
	store Store
}

// NewService creates a benchmarking service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ClientRelativeBenchmarks compares the tenant's latest signals against the
// anonymized peer medians for its industry, region, and size cohort. Tenants
// that have not opted in get an empty report with an explanatory note, and no
// signal data is touched.
func (s *Service) ClientRelativeBenchmarks(ctx context.Context, tenantID uuid.UUID, roleFamily string, windowDays int) (*types.BenchmarkReport, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	settings, err := s.store.TenantSettings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant settings: %w", err)
	}

	if settings == nil || !settings.CrossTenantOptIn {
		return &types.BenchmarkReport{
			OptedIn:     false,
			Comparisons: []types.BenchmarkComparison{},
			Notes:       []string{optOutNote},
		}, nil
	}

	signals, err := s.store.LatestSignals(ctx, tenantID, windowDays, roleFamily)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant signals: %w", err)
	}

	report := &types.BenchmarkReport{
		OptedIn:     true,
		Comparisons: []types.BenchmarkComparison{},
		Notes:       []string{"All comparisons use anonymized peer medians; individual peers are never identified."},
	}

	for _, signal := range signals {
		pool, err := s.store.LatestGeneration(ctx, signal.SignalType, windowDays, roleFamily)
		if err != nil {
			return nil, fmt.Errorf("failed to load benchmark pool for %s: %w", signal.SignalType, err)
		}
		report.Comparisons = append(report.Comparisons, compareSignal(settings, &signal, pool)...)
	}

	if len(report.Comparisons) == 0 {
		report.Notes = append(report.Notes, "No peer benchmark generation is available for the requested window yet.")
	}

	return report, nil
}

// compareSignal produces up to three comparisons for one signal: by matching
// industry, by matching region, and by sample-size cohort
func compareSignal(settings *types.TenantSettings, signal *types.BenchmarkSignal, pool []types.BenchmarkAggregate) []types.BenchmarkComparison {
	var comparisons []types.BenchmarkComparison

	if settings.Industry != "" {
		if med, ok := medianWhere(pool, func(row *types.BenchmarkAggregate) bool {
			return row.Industry == settings.Industry
		}); ok {
			comparisons = append(comparisons, buildComparison(signal, med, types.BasisIndustry, settings.Industry))
		}
	}

	if settings.Region != "" {
		if med, ok := medianWhere(pool, func(row *types.BenchmarkAggregate) bool {
			return row.Region == settings.Region
		}); ok {
			comparisons = append(comparisons, buildComparison(signal, med, types.BasisRegion, settings.Region))
		}
	}

	cohort := gating.Cohort(signal.SampleSize)
	if med, ok := medianWhere(pool, func(row *types.BenchmarkAggregate) bool {
		return gating.Cohort(row.SampleSize) == cohort
	}); ok {
		comparisons = append(comparisons, buildComparison(signal, med, types.BasisSize, cohort+" cohort"))
	}

	return comparisons
}

func buildComparison(signal *types.BenchmarkSignal, median float64, basis types.BenchmarkBasis, peerGroup string) types.BenchmarkComparison {
	delta := signal.Value - median

	direction := "above"
	if delta < 0 {
		direction = "below"
	}

	return types.BenchmarkComparison{
		Metric:         signal.SignalType,
		ClientValue:    signal.Value,
		BenchmarkValue: median,
		Delta:          delta,
		Basis:          basis,
		Interpretation: fmt.Sprintf(
			"Your %s of %.2f is %.2f %s the anonymized %s median (%s). Comparisons use pre-aggregated medians and never expose peer identities.",
			signal.SignalType, signal.Value, math.Abs(delta), direction, basis, peerGroup),
	}
}

// medianWhere computes the median value of the pool rows matching the
// predicate. The second return is false when no row matches.
func medianWhere(pool []types.BenchmarkAggregate, match func(*types.BenchmarkAggregate) bool) (float64, bool) {
	var values []float64
	for i := range pool {
		if match(&pool[i]) {
			values = append(values, pool[i].Value)
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid], true
	}
	return (values[mid-1] + values[mid]) / 2, true
}
