package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRefDate(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		got, err := parseRefDate("2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty defaults to now", func(t *testing.T) {
		got, err := parseRefDate("")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), got, time.Minute)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := parseRefDate("03/02/2026")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestParseTenantID(t *testing.T) {
	id, err := parseTenantID("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())

	_, err = parseTenantID("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--tenant is required")

	_, err = parseTenantID("not-a-uuid")
	assert.Error(t, err)
}

func TestParseRequiredUUID(t *testing.T) {
	_, err := parseRequiredUUID("", "--job-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--job-id is required")
}

func TestLoadCommandConfig_DefaultsApplied(t *testing.T) {
	cfg, err := loadCommandConfig("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, 180, cfg.LookbackDays)
	assert.Equal(t, 90, cfg.BenchmarkWindowDays)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "info", cfg.LogLevel)
}
