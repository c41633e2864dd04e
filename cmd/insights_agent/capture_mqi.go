package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/db"
	"github.com/jonathan/talent-insights/internal/logger"
	"github.com/jonathan/talent-insights/internal/mqi"
)

var captureMQICmd = &cobra.Command{
	Use:   "capture-mqi",
	Short: "Capture weekly match quality snapshots for a tenant",
	Long:  "Computes the match quality index over the 30/60/90 day windows anchored at the start of the ISO week and stores one snapshot per window. Tenants in a restricted operating mode are skipped.",
	RunE:  runCaptureMQI,
}

var (
	mqiConfigPath  string
	mqiDatabaseURL string
	mqiTenant      string
	mqiRefDate     string
)

func init() {
	captureMQICmd.Flags().StringVar(&mqiConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	captureMQICmd.Flags().StringVar(&mqiDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	captureMQICmd.Flags().StringVar(&mqiTenant, "tenant", "", "Tenant UUID (required)")
	captureMQICmd.Flags().StringVar(&mqiRefDate, "ref-date", "", "Capture anchor date as YYYY-MM-DD (default today)")

	captureMQICmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(captureMQICmd)
}

func runCaptureMQI(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCommandConfig(mqiConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = mqiDatabaseURL
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return err
	}

	tenantID, err := parseTenantID(mqiTenant)
	if err != nil {
		return err
	}
	refDate, err := parseRefDate(mqiRefDate)
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

	mode, err := database.OperatingMode(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to resolve operating mode: %w", err)
	}

	service := mqi.NewService(database, log)
	service.SetLookbackDays(cfg.LookbackDays)
	captured, err := service.CaptureWeekly(ctx, tenantID, mode, refDate)
	if err != nil {
		return fmt.Errorf("failed to capture snapshots: %w", err)
	}

	if captured == 0 {
		fmt.Fprintf(os.Stdout, "No snapshots captured for tenant %s (operating mode %s)\n", tenantID, mode)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Captured %d snapshots for tenant %s, week of %s\n",
		captured, tenantID, mqi.ISOWeekStart(refDate).Format("2006-01-02"))
	return nil
}
