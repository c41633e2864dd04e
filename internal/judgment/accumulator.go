// Package judgment rolls decision receipts up into per-dimension statistical
// aggregates over a time window. Aggregation is idempotent per window: the
// computed set replaces the previous one wholesale.
package judgment

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-insights/internal/parsing"
	"github.com/jonathan/talent-insights/internal/types"
)

// metricsPerValue is the number of metric rows emitted per dimension value
const metricsPerValue = 7

// accumulator folds receipts for one (dimension, dimensionValue) pair
type accumulator struct {
	dimension      types.Dimension
	dimensionValue string

	total         int
	byType        map[string]int
	overrides     int
	hires         int
	overrideHires int
	bands         map[string]*bandCounts

	tenureSum          float64
	tenureObservations int
	perfSum            float64
	perfObservations   int
}

type bandCounts struct {
	hires int
	total int
}

func newAccumulator(dimension types.Dimension, value string) *accumulator {
	return &accumulator{
		dimension:      dimension,
		dimensionValue: value,
		byType:         make(map[string]int),
		bands:          make(map[string]*bandCounts),
	}
}

func (a *accumulator) observe(receipt *types.DecisionReceipt) {
	a.total++
	a.byType[string(receipt.DecisionType)]++

	hired := receipt.WasHired()
	if hired {
		a.hires++
	}
	if receipt.IsOverride() {
		a.overrides++
		if hired {
			a.overrideHires++
		}
	}

	if band := receipt.Signals.ConfidenceBand; band != "" {
		counts := a.bands[band]
		if counts == nil {
			counts = &bandCounts{}
			a.bands[band] = counts
		}
		counts.total++
		if hired {
			counts.hires++
		}
	}

	if receipt.Outcome != nil {
		if receipt.Outcome.TenureDays != nil {
			a.tenureSum += float64(*receipt.Outcome.TenureDays)
			a.tenureObservations++
		}
		if receipt.Outcome.PerformanceRating != nil {
			a.perfSum += *receipt.Outcome.PerformanceRating
			a.perfObservations++
		}
	}
}

// metrics emits the seven metric rows for this accumulator
func (a *accumulator) metrics(tenantID uuid.UUID, windowStart, windowEnd time.Time) []types.JudgmentAggregate {
	baselineRate := a.hireRate()

	rows := make([]types.JudgmentAggregate, 0, metricsPerValue)
	emit := func(metric string, value any, sampleSize int) {
		rows = append(rows, types.JudgmentAggregate{
			ID:             uuid.New(),
			TenantID:       tenantID,
			Dimension:      a.dimension,
			DimensionValue: a.dimensionValue,
			Metric:         metric,
			WindowStart:    windowStart,
			WindowEnd:      windowEnd,
			Value:          value,
			SampleSize:     sampleSize,
		})
	}

	emit(types.MetricDecisionMix, &types.DecisionMixValue{Mix: a.copyMix(), Total: a.total}, a.total)

	decisions := a.hireDecisions()
	emit(types.MetricHireRate, &types.HireRateValue{
		Hires:     a.hires,
		Decisions: decisions,
		Rate:      safeDiv(a.hires, decisions),
	}, a.total)

	emit(types.MetricOverrideRate, &types.OverrideRateValue{
		Overrides: a.overrides,
		Total:     a.total,
		Rate:      safeDiv(a.overrides, a.total),
	}, a.total)

	overrideHireRate := safeDiv(a.overrideHires, a.overrides)
	emit(types.MetricOverrideSuccessDelta, &types.OverrideSuccessDeltaValue{
		HiresFromOverrides: a.overrideHires,
		OverrideRate:       safeDiv(a.overrides, a.total),
		OverrideHireRate:   overrideHireRate,
		BaselineHireRate:   baselineRate,
		Delta:              overrideHireRate - baselineRate,
	}, a.total)

	emit(types.MetricConfidenceBandSuccess, &types.ConfidenceBandSuccessValue{Bands: a.bandStats()}, a.total)

	emit(types.MetricTenureAverage, averageValue(a.tenureSum, a.tenureObservations), a.tenureObservations)
	emit(types.MetricPerformanceAverage, averageValue(a.perfSum, a.perfObservations), a.perfObservations)

	return rows
}

// hireDecisions counts submit+override receipts, falling back to the full
// total when neither type was observed
func (a *accumulator) hireDecisions() int {
	decisions := a.byType[string(types.DecisionSubmit)] + a.byType[string(types.DecisionOverride)]
	if decisions == 0 {
		return a.total
	}
	return decisions
}

func (a *accumulator) hireRate() float64 {
	return safeDiv(a.hires, a.hireDecisions())
}

func (a *accumulator) copyMix() map[string]int {
	mix := make(map[string]int, len(a.byType))
	for decisionType, count := range a.byType {
		mix[decisionType] = count
	}
	return mix
}

func (a *accumulator) bandStats() map[string]types.BandStats {
	stats := make(map[string]types.BandStats, len(a.bands))
	for band, counts := range a.bands {
		stats[band] = types.BandStats{
			Hires: counts.hires,
			Total: counts.total,
			Rate:  safeDiv(counts.hires, counts.total),
		}
	}
	return stats
}

// averageValue builds an outcome average, with a nil average when there were
// no observations
func averageValue(sum float64, observations int) *types.OutcomeAverageValue {
	value := &types.OutcomeAverageValue{Observations: observations}
	if observations > 0 {
		average := sum / float64(observations)
		value.AverageValue = &average
	}
	return value
}

// safeDiv divides two counts, short-circuiting to 0 on an empty denominator
func safeDiv(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// BuildAggregates folds a tenant's receipts into the full aggregate set for
// the window: seven metric rows per observed (dimension, dimensionValue)
// pair, in deterministic order.
func BuildAggregates(tenantID uuid.UUID, receipts []types.DecisionReceipt, windowStart, windowEnd time.Time) []types.JudgmentAggregate {
	accumulators := make(map[types.Dimension]map[string]*accumulator)
	for _, dimension := range []types.Dimension{types.DimensionFirm, types.DimensionClient, types.DimensionRoleType} {
		accumulators[dimension] = make(map[string]*accumulator)
	}

	for i := range receipts {
		receipt := &receipts[i]
		for dimension, value := range dimensionValues(receipt) {
			acc := accumulators[dimension][value]
			if acc == nil {
				acc = newAccumulator(dimension, value)
				accumulators[dimension][value] = acc
			}
			acc.observe(receipt)
		}
	}

	var rows []types.JudgmentAggregate
	for _, dimension := range []types.Dimension{types.DimensionFirm, types.DimensionClient, types.DimensionRoleType} {
		values := make([]string, 0, len(accumulators[dimension]))
		for value := range accumulators[dimension] {
			values = append(values, value)
		}
		sort.Strings(values)

		for _, value := range values {
			rows = append(rows, accumulators[dimension][value].metrics(tenantID, windowStart, windowEnd)...)
		}
	}

	return rows
}

// dimensionValues extracts the dimension values a receipt contributes to.
// Client and role type are normalized so the same segment never splits on
// formatting; firm IDs are opaque identifiers and kept as-is.
func dimensionValues(receipt *types.DecisionReceipt) map[types.Dimension]string {
	values := make(map[types.Dimension]string, 3)
	if receipt.FirmID != "" {
		values[types.DimensionFirm] = receipt.FirmID
	}
	if receipt.ClientID != "" {
		values[types.DimensionClient] = parsing.NormalizeContextKey(receipt.ClientID)
	}
	if receipt.RoleType != "" {
		values[types.DimensionRoleType] = parsing.NormalizeContextKey(receipt.RoleType)
	}
	return values
}
