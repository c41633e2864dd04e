package judgment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-insights/internal/types"
)

var (
	testTenantID    = uuid.MustParse("aaaaaaaa-1111-2222-3333-444444444444")
	testWindowStart = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	testWindowEnd   = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func hiredOutcome() *types.DecisionOutcome {
	return &types.DecisionOutcome{Hired: true}
}

// scenarioReceipts builds the canonical two-firm scenario: firm-1 sees a
// hired submit, a hired override, and a reject; firm-2 sees one non-hire.
func scenarioReceipts() []types.DecisionReceipt {
	return []types.DecisionReceipt{
		{
			TenantID: testTenantID, FirmID: "firm-1",
			DecisionType: types.DecisionSubmit,
			Signals:      types.DecisionSignals{ConfidenceBand: "high"},
			Outcome:      hiredOutcome(),
		},
		{
			TenantID: testTenantID, FirmID: "firm-1",
			DecisionType: types.DecisionOverride,
			Override:     &types.OverrideNote{Actor: "recruiter-7"},
			Signals:      types.DecisionSignals{ConfidenceBand: "low"},
			Outcome:      hiredOutcome(),
		},
		{
			TenantID: testTenantID, FirmID: "firm-1",
			DecisionType: types.DecisionReject,
		},
		{
			TenantID: testTenantID, FirmID: "firm-2",
			DecisionType: types.DecisionSubmit,
			Outcome:      &types.DecisionOutcome{Hired: false},
		},
	}
}

func findAggregate(t *testing.T, rows []types.JudgmentAggregate, dimension types.Dimension, value, metric string) types.JudgmentAggregate {
	t.Helper()
	for _, row := range rows {
		if row.Dimension == dimension && row.DimensionValue == value && row.Metric == metric {
			return row
		}
	}
	t.Fatalf("no %s/%s/%s aggregate in %d rows", dimension, value, metric, len(rows))
	return types.JudgmentAggregate{}
}

func TestBuildAggregates_TwoFirmScenario(t *testing.T) {
	rows := BuildAggregates(testTenantID, scenarioReceipts(), testWindowStart, testWindowEnd)

	// Two firm values, no client/role values: 2 * 7 rows.
	require.Len(t, rows, 14)

	hireRate := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricHireRate).Value.(*types.HireRateValue)
	assert.Equal(t, 2, hireRate.Hires)
	assert.Equal(t, 2, hireRate.Decisions)
	assert.InDelta(t, 1.0, hireRate.Rate, 0.001)

	overrideRate := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricOverrideRate).Value.(*types.OverrideRateValue)
	assert.Equal(t, 1, overrideRate.Overrides)
	assert.Equal(t, 3, overrideRate.Total)
	assert.InDelta(t, 0.333, overrideRate.Rate, 0.001)

	firm2 := findAggregate(t, rows, types.DimensionFirm, "firm-2", types.MetricHireRate).Value.(*types.HireRateValue)
	assert.Zero(t, firm2.Hires)
	assert.InDelta(t, 0.0, firm2.Rate, 0.001)
}

func TestBuildAggregates_DecisionMixConsistency(t *testing.T) {
	receipts := scenarioReceipts()
	rows := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)

	mix := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricDecisionMix).Value.(*types.DecisionMixValue)

	sum := 0
	for _, count := range mix.Mix {
		sum += count
	}
	assert.Equal(t, mix.Total, sum)
	assert.Equal(t, 3, mix.Total, "firm-1 saw three receipts")
}

func TestBuildAggregates_OverrideSuccessDelta(t *testing.T) {
	rows := BuildAggregates(testTenantID, scenarioReceipts(), testWindowStart, testWindowEnd)

	delta := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricOverrideSuccessDelta).Value.(*types.OverrideSuccessDeltaValue)

	assert.Equal(t, 1, delta.HiresFromOverrides)
	assert.InDelta(t, 1.0/3.0, delta.OverrideRate, 0.001)
	assert.InDelta(t, 1.0, delta.OverrideHireRate, 0.001)
	assert.InDelta(t, 1.0, delta.BaselineHireRate, 0.001)
	assert.InDelta(t, 0.0, delta.Delta, 0.001)
}

func TestBuildAggregates_ConfidenceBands(t *testing.T) {
	rows := BuildAggregates(testTenantID, scenarioReceipts(), testWindowStart, testWindowEnd)

	bands := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricConfidenceBandSuccess).Value.(*types.ConfidenceBandSuccessValue)

	require.Len(t, bands.Bands, 2)
	assert.Equal(t, types.BandStats{Hires: 1, Total: 1, Rate: 1.0}, bands.Bands["high"])
	assert.Equal(t, types.BandStats{Hires: 1, Total: 1, Rate: 1.0}, bands.Bands["low"])
}

func TestBuildAggregates_OutcomeAverages(t *testing.T) {
	receipts := []types.DecisionReceipt{
		{
			TenantID: testTenantID, FirmID: "firm-1", DecisionType: types.DecisionSubmit,
			Outcome: &types.DecisionOutcome{Hired: true, TenureDays: intPtr(120), PerformanceRating: floatPtr(4.0)},
		},
		{
			TenantID: testTenantID, FirmID: "firm-1", DecisionType: types.DecisionSubmit,
			Outcome: &types.DecisionOutcome{Hired: true, TenureDays: intPtr(240)},
		},
	}

	rows := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)

	tenure := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricTenureAverage).Value.(*types.OutcomeAverageValue)
	require.NotNil(t, tenure.AverageValue)
	assert.InDelta(t, 180.0, *tenure.AverageValue, 0.001)
	assert.Equal(t, 2, tenure.Observations)

	performance := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricPerformanceAverage).Value.(*types.OutcomeAverageValue)
	require.NotNil(t, performance.AverageValue)
	assert.InDelta(t, 4.0, *performance.AverageValue, 0.001)
	assert.Equal(t, 1, performance.Observations)
}

func TestBuildAggregates_NullAverageOnZeroObservations(t *testing.T) {
	receipts := []types.DecisionReceipt{
		{TenantID: testTenantID, FirmID: "firm-1", DecisionType: types.DecisionReject},
	}

	rows := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)

	tenure := findAggregate(t, rows, types.DimensionFirm, "firm-1", types.MetricTenureAverage).Value.(*types.OutcomeAverageValue)
	assert.Nil(t, tenure.AverageValue)
	assert.Zero(t, tenure.Observations)
}

func TestBuildAggregates_ClientAndRoleDimensions(t *testing.T) {
	receipts := []types.DecisionReceipt{
		{
			TenantID: testTenantID, FirmID: "firm-1", ClientID: "Acme Corp",
			RoleType: "Backend_Engineer", DecisionType: types.DecisionSubmit, Outcome: hiredOutcome(),
		},
		{
			TenantID: testTenantID, FirmID: "firm-1", ClientID: "acme corp",
			RoleType: "backend engineer", DecisionType: types.DecisionReject,
		},
	}

	rows := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)

	// Formatting variants of client/role collapse into one dimension value.
	mix := findAggregate(t, rows, types.DimensionClient, "acme-corp", types.MetricDecisionMix).Value.(*types.DecisionMixValue)
	assert.Equal(t, 2, mix.Total)

	roleMix := findAggregate(t, rows, types.DimensionRoleType, "backend-engineer", types.MetricDecisionMix).Value.(*types.DecisionMixValue)
	assert.Equal(t, 2, roleMix.Total)

	// 3 dimension values (firm, client, role) * 7 metrics.
	assert.Len(t, rows, 21)
}

func TestBuildAggregates_EmptyWindow(t *testing.T) {
	rows := BuildAggregates(testTenantID, nil, testWindowStart, testWindowEnd)
	assert.Empty(t, rows)
}

func TestBuildAggregates_Deterministic(t *testing.T) {
	receipts := scenarioReceipts()

	first := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)
	second := BuildAggregates(testTenantID, receipts, testWindowStart, testWindowEnd)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Dimension, second[i].Dimension)
		assert.Equal(t, first[i].DimensionValue, second[i].DimensionValue)
		assert.Equal(t, first[i].Metric, second[i].Metric)
		assert.Equal(t, first[i].Value, second[i].Value)
	}
}
