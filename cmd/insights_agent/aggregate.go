package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/db"
	"github.com/jonathan/talent-insights/internal/judgment"
	"github.com/jonathan/talent-insights/internal/logger"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Recompute judgment aggregates for the previous window",
	Long:  "Recomputes the seven judgment-memory metrics per firm, client, and role type for every tenant over the previous window. Reruns replace the window's rows, so the command is safe to repeat.",
	RunE:  runAggregate,
}

var (
	aggConfigPath  string
	aggDatabaseURL string
	aggWindowDays  int
	aggConcurrency int
	aggTenant      string
	aggRefDate     string
)

func init() {
	aggregateCmd.Flags().StringVar(&aggConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	aggregateCmd.Flags().StringVar(&aggDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	aggregateCmd.Flags().IntVar(&aggWindowDays, "window-days", 0, "Aggregation window in days (default 30)")
	aggregateCmd.Flags().IntVar(&aggConcurrency, "concurrency", 0, "Tenants processed in parallel (default 4)")
	aggregateCmd.Flags().StringVar(&aggTenant, "tenant", "", "Aggregate a single tenant instead of all tenants")
	aggregateCmd.Flags().StringVar(&aggRefDate, "ref-date", "", "Window anchor date as YYYY-MM-DD (default today)")

	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCommandConfig(aggConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = aggDatabaseURL
	}
	if cmd.Flags().Changed("window-days") {
		cfg.WindowDays = aggWindowDays
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = aggConcurrency
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return err
	}

	refDate, err := parseRefDate(aggRefDate)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	aggregator := judgment.NewAggregator(database, log)
	aggregator.SetConcurrency(cfg.Concurrency)

	windowStart, windowEnd := judgment.PreviousWindow(refDate, cfg.WindowDays)

	if aggTenant != "" {
		tenantID, err := parseTenantID(aggTenant)
		if err != nil {
			return err
		}
		rows, err := aggregator.AggregateTenant(ctx, tenantID, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("failed to aggregate tenant %s: %w", tenantID, err)
		}
		fmt.Fprintf(os.Stdout, "Aggregated tenant %s: %d rows for window %s to %s\n",
			tenantID, rows, windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02"))
		return nil
	}

	result, err := aggregator.RunWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Aggregated %d tenants (%d succeeded, %d failed), %d rows for window %s to %s\n",
		result.Tenants, result.Succeeded, result.Failed, result.Rows,
		windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02"))

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d tenants failed; see logs", result.Failed, result.Tenants)
	}
	return nil
}
