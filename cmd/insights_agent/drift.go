package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/db"
	"github.com/jonathan/talent-insights/internal/drift"
	"github.com/jonathan/talent-insights/internal/observability"
)

var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Propose advisory drift adjustments for a tenant",
	Long:  "Derives advisory tuning proposals from the tenant's latest judgment aggregates. Proposals are printed as JSON and never applied automatically.",
	RunE:  runDrift,
}

var (
	driftConfigPath  string
	driftDatabaseURL string
	driftTenant      string
	driftVerbose     bool
)

func init() {
	driftCmd.Flags().StringVar(&driftConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	driftCmd.Flags().StringVar(&driftDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	driftCmd.Flags().StringVar(&driftTenant, "tenant", "", "Tenant UUID (required)")
	driftCmd.Flags().BoolVarP(&driftVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	driftCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCommandConfig(driftConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = driftDatabaseURL
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return err
	}

	tenantID, err := parseTenantID(driftTenant)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	insights, err := database.LatestInsights(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load judgment insights: %w", err)
	}

	adjustments := drift.PlanAdjustments(insights)

	if driftVerbose {
		observability.NewPrinter(os.Stderr).PrintAdjustments(adjustments)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(adjustments); err != nil {
		return fmt.Errorf("failed to encode adjustments: %w", err)
	}
	return nil
}
