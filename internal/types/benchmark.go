package types

import (
	"time"

	"github.com/google/uuid"
)

// BenchmarkBasis identifies which peer grouping a comparison was computed against
type BenchmarkBasis string

// Benchmark basis constants
const (
	BasisIndustry BenchmarkBasis = "industry"
	BasisRegion   BenchmarkBasis = "region"
	BasisSize     BenchmarkBasis = "size"
)

// BenchmarkComparison compares one tenant signal against an anonymized
// cross-tenant median. It never carries peer identities or raw peer values.
type BenchmarkComparison struct {
	Metric         string         `json:"metric"`
	ClientValue    float64        `json:"client_value"`
	BenchmarkValue float64        `json:"benchmark_value"`
	Delta          float64        `json:"delta"`
	Interpretation string         `json:"interpretation"`
	Basis          BenchmarkBasis `json:"basis"`
}

// BenchmarkReport is the full result of a benchmark request, including the
// opt-in gate outcome
type BenchmarkReport struct {
	OptedIn     bool                  `json:"opted_in"`
	Comparisons []BenchmarkComparison `json:"comparisons"`
	Notes       []string              `json:"notes"`
}

// BenchmarkSignal is a tenant's own most recent value for one signal type.
// SampleSize exists only for cohort gating and is never exposed in a
// comparison.
type BenchmarkSignal struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	SignalType string    `json:"signal_type"`
	RoleFamily string    `json:"role_family,omitempty"`
	WindowDays int       `json:"window_days"`
	Value      float64   `json:"value"`
	SampleSize int       `json:"sample_size"`
	CreatedAt  time.Time `json:"created_at"`
}

// BenchmarkAggregate is one pre-aggregated, anonymized cross-tenant pool row.
// Rows sharing the most recent CreatedAt for a (signalType, windowDays,
// roleFamily) form the current generation.
type BenchmarkAggregate struct {
	SignalType string    `json:"signal_type"`
	RoleFamily string    `json:"role_family,omitempty"`
	WindowDays int       `json:"window_days"`
	Industry   string    `json:"industry,omitempty"`
	Region     string    `json:"region,omitempty"`
	SampleSize int       `json:"sample_size"`
	Value      float64   `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}
