// Package main provides the entry point for the talent insights CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insights_agent",
	Short: "Talent insights batch and scoring CLI",
	Long:  "Talent insights computes deterministic match scores, confidence assessments, judgment-memory aggregates, match quality snapshots, drift proposals, decision culture cues, and client-relative benchmarks for recruiting tenants.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
