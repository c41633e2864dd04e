package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/cues"
	"github.com/jonathan/talent-insights/internal/db"
	"github.com/jonathan/talent-insights/internal/observability"
)

var cuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "Build decision culture cues for a client or role context",
	Long:  "Surfaces short advisory cues about a tenant's decision patterns for the given client and role type, drawn from the latest judgment aggregates. At most two cues are returned.",
	RunE:  runCues,
}

var (
	cuesConfigPath  string
	cuesDatabaseURL string
	cuesTenant      string
	cuesClient      string
	cuesRoleType    string
	cuesVerbose     bool
)

func init() {
	cuesCmd.Flags().StringVar(&cuesConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cuesCmd.Flags().StringVar(&cuesDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cuesCmd.Flags().StringVar(&cuesTenant, "tenant", "", "Tenant UUID (required)")
	cuesCmd.Flags().StringVar(&cuesClient, "client", "", "Client identifier for client-scoped cues")
	cuesCmd.Flags().StringVar(&cuesRoleType, "role-type", "", "Role type for role-scoped cues")
	cuesCmd.Flags().BoolVarP(&cuesVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	cuesCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(cuesCmd)
}

func runCues(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCommandConfig(cuesConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = cuesDatabaseURL
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return err
	}

	tenantID, err := parseTenantID(cuesTenant)
	if err != nil {
		return err
	}
	if cuesClient == "" && cuesRoleType == "" {
		return fmt.Errorf("at least one of --client or --role-type must be provided")
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

	result := cues.BuildCues(insights, cues.Context{ClientID: cuesClient, RoleType: cuesRoleType})

	if cuesVerbose {
		observability.NewPrinter(os.Stderr).PrintCues(result)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode cues: %w", err)
	}
	return nil
}
