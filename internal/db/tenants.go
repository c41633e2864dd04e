package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-insights/internal/types"
)

// ListTenantIDs returns every tenant known to the settings table, ordered for
// stable batch runs
func (db *DB) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT tenant_id FROM tenant_settings ORDER BY tenant_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tenant id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenant ids: %w", err)
	}
	return ids, nil
}

// TenantSettings retrieves a tenant's settings, or nil when the tenant is unknown
func (db *DB) TenantSettings(ctx context.Context, tenantID uuid.UUID) (*types.TenantSettings, error) {
	var settings types.TenantSettings
	err := db.pool.QueryRow(ctx,
		`SELECT tenant_id, operating_mode, cross_tenant_opt_in, COALESCE(industry, ''), COALESCE(region, '')
		 FROM tenant_settings WHERE tenant_id = $1`,
		tenantID,
	).Scan(&settings.TenantID, &settings.OperatingMode, &settings.CrossTenantOptIn,
		&settings.Industry, &settings.Region)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant settings: %w", err)
	}
	return &settings, nil
}

// OperatingMode returns the tenant's operating mode, defaulting to standard
// for unknown tenants
func (db *DB) OperatingMode(ctx context.Context, tenantID uuid.UUID) (types.OperatingMode, error) {
	settings, err := db.TenantSettings(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return types.ModeStandard, nil
	}
	return settings.OperatingMode, nil
}
