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

// ReplaceSnapshots atomically replaces a tenant's quality snapshots for one
// capture date. Reruns of the same capture therefore overwrite rather than
// accumulate.
func (db *DB) ReplaceSnapshots(ctx context.Context, tenantID uuid.UUID, captureDate time.Time, snapshots []types.MatchQualitySnapshot) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM match_quality_snapshots WHERE tenant_id = $1 AND captured_at = $2`,
		tenantID, captureDate,
	)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot capture: %w", err)
	}

	for _, snap := range snapshots {
		componentsJSON, err := json.Marshal(snap.Components)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot components: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO match_quality_snapshots
			     (tenant_id, scope, scope_ref, window_days, mqi, components, captured_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			snap.TenantID, snap.Scope, snap.ScopeRef, snap.WindowDays, snap.MQI, componentsJSON, captureDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot %s/%d: %w", snap.Scope, snap.WindowDays, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot capture: %w", err)
	}
	return nil
}

// LatestSnapshots retrieves the tenant's snapshots from its most recent capture
func (db *DB) LatestSnapshots(ctx context.Context, tenantID uuid.UUID) ([]types.MatchQualitySnapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, scope, COALESCE(scope_ref, ''), window_days, mqi, components, captured_at
		 FROM match_quality_snapshots
		 WHERE tenant_id = $1
		   AND captured_at = (SELECT MAX(captured_at) FROM match_quality_snapshots WHERE tenant_id = $1)
		 ORDER BY scope ASC, window_days ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quality snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.MatchQualitySnapshot
	for rows.Next() {
		var snap types.MatchQualitySnapshot
		var componentsJSON []byte
		if err := rows.Scan(&snap.ID, &snap.TenantID, &snap.Scope, &snap.ScopeRef,
			&snap.WindowDays, &snap.MQI, &componentsJSON, &snap.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quality snapshot: %w", err)
		}
		if componentsJSON != nil {
			_ = json.Unmarshal(componentsJSON, &snap.Components)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quality snapshots: %w", err)
	}
	return snapshots, nil
}

// FunnelCounts tallies shortlist/interview/hire stage events for the window
func (db *DB) FunnelCounts(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) (types.FunnelCounts, error) {
	var counts types.FunnelCounts
	query, args := scopedQuery(
		`SELECT COUNT(*) FILTER (WHERE stage = 'shortlisted'),
		        COUNT(*) FILTER (WHERE stage = 'interviewed'),
		        COUNT(*) FILTER (WHERE stage = 'hired')
		 FROM funnel_events
		 WHERE tenant_id = $1 AND occurred_at >= $2 AND occurred_at < $3`,
		tenantID, scope, scopeRef, since, until,
	)
	err := db.pool.QueryRow(ctx, query, args...).Scan(&counts.Shortlisted, &counts.Interviewed, &counts.Hired)
	if err != nil {
		return types.FunnelCounts{}, fmt.Errorf("failed to count funnel events: %w", err)
	}
	return counts, nil
}

// FeedbackRatings returns the raw candidate feedback ratings recorded in the window
func (db *DB) FeedbackRatings(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) ([]string, error) {
	query, args := scopedQuery(
		`SELECT rating FROM candidate_feedback
		 WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`,
		tenantID, scope, scopeRef, since, until,
	)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback ratings: %w", err)
	}
	defer rows.Close()

	var ratings []string
	for rows.Next() {
		var rating string
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("failed to scan feedback rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback ratings: %w", err)
	}
	return ratings, nil
}

// DaysToHire returns days-to-hire values for hires completed inside the range
func (db *DB) DaysToHire(ctx context.Context, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) ([]float64, error) {
	query, args := scopedQuery(
		`SELECT days_to_hire FROM placements
		 WHERE tenant_id = $1 AND hired_at >= $2 AND hired_at < $3 AND days_to_hire IS NOT NULL`,
		tenantID, scope, scopeRef, since, until,
	)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list days to hire: %w", err)
	}
	defer rows.Close()

	var days []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan days to hire: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read days to hire: %w", err)
	}
	return days, nil
}

// scopedQuery appends the scope filter for job and recruiter scopes. The
// tenant scope covers all rows, so no extra predicate is added.
func scopedQuery(base string, tenantID uuid.UUID, scope types.QualityScope, scopeRef string, since, until time.Time) (string, []any) {
	args := []any{tenantID, since, until}
	switch scope {
	case types.ScopeJob:
		return base + " AND job_id = $4", append(args, scopeRef)
	case types.ScopeRecruiter:
		return base + " AND recruiter_id = $4", append(args, scopeRef)
	default:
		return base, args
	}
}
