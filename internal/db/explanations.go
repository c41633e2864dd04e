package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-insights/internal/explain"
)

// GetExplanation retrieves the cached explanation for a tenant/job/candidate
// key, or nil when none exists
func (db *DB) GetExplanation(ctx context.Context, tenantID, jobID, candidateID uuid.UUID) (*explain.Record, error) {
	var rec explain.Record
	err := db.pool.QueryRow(ctx,
		`SELECT tenant_id, job_id, candidate_id, version, updated_at, explanation, fingerprint
		 FROM match_explanations
		 WHERE tenant_id = $1 AND job_id = $2 AND candidate_id = $3`,
		tenantID, jobID, candidateID,
	).Scan(&rec.TenantID, &rec.JobID, &rec.CandidateID, &rec.Version, &rec.UpdatedAt,
		&rec.Explanation, &rec.Fingerprint)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get explanation: %w", err)
	}
	return &rec, nil
}

// UpsertExplanation inserts or overwrites the explanation for its key.
// When concurrent writers collide, the last commit wins.
func (db *DB) UpsertExplanation(ctx context.Context, record *explain.Record) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO match_explanations
		     (tenant_id, job_id, candidate_id, version, updated_at, explanation, fingerprint)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (tenant_id, job_id, candidate_id) DO UPDATE SET
		     version = $4, updated_at = $5, explanation = $6, fingerprint = $7`,
		record.TenantID, record.JobID, record.CandidateID, record.Version,
		record.UpdatedAt, record.Explanation, record.Fingerprint,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert explanation: %w", err)
	}
	return nil
}
