package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-insights/internal/types"
)

func TestFoldInsights(t *testing.T) {
	tenantID := uuid.New()
	windowStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	row := func(dim types.Dimension, value, metric string, raw string, sample int) aggregateRow {
		return aggregateRow{
			TenantID:       tenantID,
			Dimension:      dim,
			DimensionValue: value,
			Metric:         metric,
			WindowStart:    windowStart,
			WindowEnd:      windowEnd,
			Value:          []byte(raw),
			SampleSize:     sample,
		}
	}

	rows := []aggregateRow{
		row(types.DimensionFirm, "firm-1", types.MetricDecisionMix, `{"mix":{"submit":2,"reject":1},"total":3}`, 3),
		row(types.DimensionFirm, "firm-1", types.MetricHireRate, `{"hires":1,"decisions":2,"rate":0.5}`, 3),
		row(types.DimensionClient, "acme-corp", types.MetricOverrideRate, `{"overrides":1,"decisions":2,"rate":0.5}`, 2),
	}

	insights := foldInsights(rows)
	require.Len(t, insights, 2)

	firm := insights[0]
	assert.Equal(t, types.DimensionFirm, firm.Dimension)
	assert.Equal(t, "firm-1", firm.DimensionValue)
	assert.Equal(t, 3, firm.SampleSize)
	assert.Equal(t, windowStart, firm.WindowStart)
	require.NotNil(t, firm.DecisionMix)
	assert.Equal(t, 3, firm.DecisionMix.Total)
	assert.Equal(t, 2, firm.DecisionMix.Mix["submit"])
	require.NotNil(t, firm.HireRate)
	assert.InDelta(t, 0.5, firm.HireRate.Rate, 0.001)
	assert.Nil(t, firm.OverrideRate)

	client := insights[1]
	assert.Equal(t, types.DimensionClient, client.Dimension)
	assert.Equal(t, "acme-corp", client.DimensionValue)
	require.NotNil(t, client.OverrideRate)
	assert.Equal(t, 1, client.OverrideRate.Overrides)
}

func TestFoldInsights_BadValueLeavesSlotNil(t *testing.T) {
	rows := []aggregateRow{
		{
			Dimension:      types.DimensionFirm,
			DimensionValue: "firm-1",
			Metric:         types.MetricHireRate,
			Value:          []byte(`{broken`),
			SampleSize:     5,
		},
	}

	insights := foldInsights(rows)
	require.Len(t, insights, 1)
	assert.Nil(t, insights[0].HireRate)
	assert.Equal(t, 5, insights[0].SampleSize)
}

func TestFoldInsights_Empty(t *testing.T) {
	assert.Empty(t, foldInsights(nil))
}

func TestDecodeOverride(t *testing.T) {
	note := decodeOverride([]byte(`{"actor":"lead-recruiter","reason":"strong referral"}`))
	require.NotNil(t, note)
	assert.Equal(t, "lead-recruiter", note.Actor)
	assert.Equal(t, "strong referral", note.Reason)

	assert.Nil(t, decodeOverride(nil))
	assert.Nil(t, decodeOverride([]byte(`null`)))
	assert.Nil(t, decodeOverride([]byte(`broken`)))
}

func TestScopedQuery(t *testing.T) {
	tenantID := uuid.New()
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 0, 30)

	t.Run("tenant scope adds no predicate", func(t *testing.T) {
		query, args := scopedQuery("SELECT 1", tenantID, types.ScopeTenant, "", since, until)
		assert.Equal(t, "SELECT 1", query)
		assert.Len(t, args, 3)
	})

	t.Run("job scope filters on job_id", func(t *testing.T) {
		query, args := scopedQuery("SELECT 1", tenantID, types.ScopeJob, "job-9", since, until)
		assert.Contains(t, query, "job_id = $4")
		require.Len(t, args, 4)
		assert.Equal(t, "job-9", args[3])
	})

	t.Run("recruiter scope filters on recruiter_id", func(t *testing.T) {
		query, args := scopedQuery("SELECT 1", tenantID, types.ScopeRecruiter, "rec-2", since, until)
		assert.Contains(t, query, "recruiter_id = $4")
		require.Len(t, args, 4)
		assert.Equal(t, "rec-2", args[3])
	})
}
