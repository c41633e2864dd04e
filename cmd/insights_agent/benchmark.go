package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/benchmark"
	"github.com/jonathan/talent-insights/internal/db"
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare a tenant's signals against anonymized peer medians",
	Long:  "Builds a client-relative benchmark report from the pre-aggregated cross-tenant pool. Tenants that have not opted in to cross-tenant comparison get an empty report with an explanatory note.",
	RunE:  runBenchmark,
}

var (
	benchConfigPath  string
	benchDatabaseURL string
	benchTenant      string
	benchWindowDays  int
	benchRoleFamily  string
)

func init() {
	benchmarkCmd.Flags().StringVar(&benchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	benchmarkCmd.Flags().StringVar(&benchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	benchmarkCmd.Flags().StringVar(&benchTenant, "tenant", "", "Tenant UUID (required)")
	benchmarkCmd.Flags().IntVar(&benchWindowDays, "window-days", 0, "Benchmark window in days (default 90)")
	benchmarkCmd.Flags().StringVar(&benchRoleFamily, "role-family", "", "Restrict the comparison to one role family")

	benchmarkCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCommandConfig(benchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = benchDatabaseURL
	}
	if cmd.Flags().Changed("window-days") {
		cfg.BenchmarkWindowDays = benchWindowDays
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return err
	}

	tenantID, err := parseTenantID(benchTenant)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	service := benchmark.NewService(database)
	report, err := service.ClientRelativeBenchmarks(ctx, tenantID, benchRoleFamily, cfg.BenchmarkWindowDays)
	if err != nil {
		return fmt.Errorf("failed to build benchmark report: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode benchmark report: %w", err)
	}
	return nil
}
