package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-insights/internal/types"
	"github.com/jonathan/talent-insights/internal/validation"
)

// DecisionReceipts retrieves a tenant's receipts created inside [windowStart, windowEnd).
// JSONB payload columns are sanitized field by field: a malformed signals or
// outcome blob degrades that field without dropping the receipt.
func (db *DB) DecisionReceipts(ctx context.Context, tenantID uuid.UUID, windowStart, windowEnd time.Time) ([]types.DecisionReceipt, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, firm_id, COALESCE(client_id, ''), COALESCE(role_type, ''),
		        decision_type, signals, human_override, outcome, created_at
		 FROM decision_receipts
		 WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at ASC`,
		tenantID, windowStart, windowEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list decision receipts: %w", err)
	}
	defer rows.Close()

	var receipts []types.DecisionReceipt
	for rows.Next() {
		var r types.DecisionReceipt
		var signalsJSON, overrideJSON, outcomeJSON []byte
		if err := rows.Scan(&r.ID, &r.TenantID, &r.FirmID, &r.ClientID, &r.RoleType,
			&r.DecisionType, &signalsJSON, &overrideJSON, &outcomeJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision receipt: %w", err)
		}

		r.Signals = validation.SanitizeSignals(signalsJSON)
		r.Override = decodeOverride(overrideJSON)
		r.Outcome = validation.SanitizeOutcome(outcomeJSON)

		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decision receipts: %w", err)
	}
	return receipts, nil
}

// decodeOverride decodes a human override payload, returning nil when absent
// or undecodable
func decodeOverride(raw []byte) *types.OverrideNote {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var note types.OverrideNote
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil
	}
	return &note
}
