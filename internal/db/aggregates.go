package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-insights/internal/types"
)

// ReplaceAggregates atomically replaces a tenant's aggregate rows for one
// window. Delete and insert run in a single transaction so a rerun of the
// same window never duplicates rows and readers never see a partial window.
func (db *DB) ReplaceAggregates(ctx context.Context, tenantID uuid.UUID, windowStart, windowEnd time.Time, aggregates []types.JudgmentAggregate) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM judgment_aggregates
		 WHERE tenant_id = $1 AND window_start = $2 AND window_end = $3`,
		tenantID, windowStart, windowEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to clear aggregate window: %w", err)
	}

	for _, agg := range aggregates {
		valueJSON, err := json.Marshal(agg.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal aggregate value: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO judgment_aggregates
			     (tenant_id, dimension, dimension_value, metric, window_start, window_end, value, sample_size)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			agg.TenantID, agg.Dimension, agg.DimensionValue, agg.Metric,
			agg.WindowStart, agg.WindowEnd, valueJSON, agg.SampleSize,
		)
		if err != nil {
			return fmt.Errorf("failed to insert aggregate %s/%s: %w", agg.Dimension, agg.Metric, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit aggregate window: %w", err)
	}
	return nil
}

// LatestInsights loads the tenant's aggregate rows for the most recent window
// and folds the per-metric rows into one insight per dimension value.
func (db *DB) LatestInsights(ctx context.Context, tenantID uuid.UUID) ([]types.JudgmentInsight, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT tenant_id, dimension, dimension_value, metric, window_start, window_end, value, sample_size
		 FROM judgment_aggregates
		 WHERE tenant_id = $1
		   AND window_end = (SELECT MAX(window_end) FROM judgment_aggregates WHERE tenant_id = $1)
		 ORDER BY dimension ASC, dimension_value ASC, metric ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query judgment aggregates: %w", err)
	}
	defer rows.Close()

	var flat []aggregateRow
	for rows.Next() {
		var row aggregateRow
		if err := rows.Scan(&row.TenantID, &row.Dimension, &row.DimensionValue, &row.Metric,
			&row.WindowStart, &row.WindowEnd, &row.Value, &row.SampleSize); err != nil {
			return nil, fmt.Errorf("failed to scan judgment aggregate: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read judgment aggregates: %w", err)
	}

	return foldInsights(flat), nil
}

// aggregateRow mirrors one judgment_aggregates row with its value still as
// raw JSON
type aggregateRow struct {
	TenantID       uuid.UUID
	Dimension      types.Dimension
	DimensionValue string
	Metric         string
	WindowStart    time.Time
	WindowEnd      time.Time
	Value          []byte
	SampleSize     int
}

// foldInsights groups metric rows by (dimension, dimensionValue) and decodes
// each value into its typed slot. Rows arrive ordered, so grouping preserves
// the stored dimension ordering. A row whose value fails to decode leaves the
// slot nil instead of failing the insight.
func foldInsights(rows []aggregateRow) []types.JudgmentInsight {
	var insights []types.JudgmentInsight
	var current *types.JudgmentInsight

	for _, row := range rows {
		if current == nil || current.Dimension != row.Dimension || current.DimensionValue != row.DimensionValue {
			insights = append(insights, types.JudgmentInsight{
				TenantID:       row.TenantID,
				Dimension:      row.Dimension,
				DimensionValue: row.DimensionValue,
				WindowStart:    row.WindowStart,
				WindowEnd:      row.WindowEnd,
			})
			current = &insights[len(insights)-1]
		}
		if row.SampleSize > current.SampleSize {
			current.SampleSize = row.SampleSize
		}

		switch row.Metric {
		case types.MetricDecisionMix:
			current.DecisionMix = decodeValue[types.DecisionMixValue](row.Value)
		case types.MetricHireRate:
			current.HireRate = decodeValue[types.HireRateValue](row.Value)
		case types.MetricOverrideRate:
			current.OverrideRate = decodeValue[types.OverrideRateValue](row.Value)
		case types.MetricOverrideSuccessDelta:
			current.OverrideSuccessDelta = decodeValue[types.OverrideSuccessDeltaValue](row.Value)
		case types.MetricConfidenceBandSuccess:
			current.ConfidenceBandSuccess = decodeValue[types.ConfidenceBandSuccessValue](row.Value)
		case types.MetricTenureAverage:
			current.TenureAverage = decodeValue[types.OutcomeAverageValue](row.Value)
		case types.MetricPerformanceAverage:
			current.PerformanceAverage = decodeValue[types.OutcomeAverageValue](row.Value)
		}
	}
	return insights
}

func decodeValue[T any](raw []byte) *T {
	if len(raw) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
