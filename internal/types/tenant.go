package types

import "github.com/google/uuid"

// OperatingMode is the tenant's operating mode, supplied by the surrounding
// application. Restricted modes suppress snapshot capture.
type OperatingMode string

// Operating mode constants
const (
	ModeStandard  OperatingMode = "standard"
	ModeFireDrill OperatingMode = "fire_drill"
	ModeDemo      OperatingMode = "demo"
)

// Restricted reports whether the mode suppresses background captures.
// Suppression in these modes is deliberate, not a failure.
func (m OperatingMode) Restricted() bool {
	return m == ModeFireDrill || m == ModeDemo
}

// TenantSettings holds the per-tenant configuration this core reads from the
// external tenant store
type TenantSettings struct {
	TenantID         uuid.UUID     `json:"tenant_id"`
	OperatingMode    OperatingMode `json:"operating_mode"`
	CrossTenantOptIn bool          `json:"cross_tenant_opt_in"`
	Industry         string        `json:"industry,omitempty"`
	Region           string        `json:"region,omitempty"`
}
