package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-insights/internal/types"
)

// LatestSignals returns the tenant's most recent value per signal type for
// the window and role family
func (db *DB) LatestSignals(ctx context.Context, tenantID uuid.UUID, windowDays int, roleFamily string) ([]types.BenchmarkSignal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT ON (signal_type)
		        tenant_id, signal_type, COALESCE(role_family, ''), window_days, value, sample_size, created_at
		 FROM benchmark_signals
		 WHERE tenant_id = $1 AND window_days = $2 AND COALESCE(role_family, '') = $3
		 ORDER BY signal_type ASC, created_at DESC`,
		tenantID, windowDays, roleFamily,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark signals: %w", err)
	}
	defer rows.Close()

	var signals []types.BenchmarkSignal
	for rows.Next() {
		var s types.BenchmarkSignal
		if err := rows.Scan(&s.TenantID, &s.SignalType, &s.RoleFamily, &s.WindowDays,
			&s.Value, &s.SampleSize, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark signal: %w", err)
		}
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benchmark signals: %w", err)
	}
	return signals, nil
}

// LatestGeneration returns the cross-tenant pool rows sharing the most recent
// creation time for the signal type, window, and role family
func (db *DB) LatestGeneration(ctx context.Context, signalType string, windowDays int, roleFamily string) ([]types.BenchmarkAggregate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT signal_type, COALESCE(role_family, ''), window_days,
		        COALESCE(industry, ''), COALESCE(region, ''), sample_size, value, created_at
		 FROM benchmark_aggregates
		 WHERE signal_type = $1 AND window_days = $2 AND COALESCE(role_family, '') = $3
		   AND created_at = (SELECT MAX(created_at) FROM benchmark_aggregates
		                     WHERE signal_type = $1 AND window_days = $2 AND COALESCE(role_family, '') = $3)
		 ORDER BY industry ASC, region ASC, sample_size ASC`,
		signalType, windowDays, roleFamily,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark pool: %w", err)
	}
	defer rows.Close()

	var pool []types.BenchmarkAggregate
	for rows.Next() {
		var a types.BenchmarkAggregate
		if err := rows.Scan(&a.SignalType, &a.RoleFamily, &a.WindowDays,
			&a.Industry, &a.Region, &a.SampleSize, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark pool row: %w", err)
		}
		pool = append(pool, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benchmark pool: %w", err)
	}
	return pool, nil
}
