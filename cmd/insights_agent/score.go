package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-insights/internal/db"
	"github.com/jonathan/talent-insights/internal/explain"
	"github.com/jonathan/talent-insights/internal/llm"
	"github.com/jonathan/talent-insights/internal/logger"
	"github.com/jonathan/talent-insights/internal/observability"
	"github.com/jonathan/talent-insights/internal/scoring"
	"github.com/jonathan/talent-insights/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate against a job profile",
	Long:  "Computes the deterministic match score breakdown and confidence assessment for a job/candidate pair given as JSON files. With --explain, a cached or freshly generated natural language explanation is included.",
	RunE:  runScore,
}

var (
	scoreConfigPath  string
	scoreDatabaseURL string
	scoreJobPath     string
	scoreCandPath    string
	scoreExplain     bool
	scoreForce       bool
	scoreTenant      string
	scoreJobID       string
	scoreCandID      string
	scoreMode        string
	scoreAPIKey      string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVar(&scoreDatabaseURL, "db-url", "", "PostgreSQL connection URL (only needed with --explain)")
	scoreCmd.Flags().StringVarP(&scoreJobPath, "job", "j", "", "Path to job profile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreCandPath, "candidate", "c", "", "Path to candidate profile JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Include a natural language explanation")
	scoreCmd.Flags().BoolVar(&scoreForce, "force", false, "Regenerate the explanation even when a cached one matches")
	scoreCmd.Flags().StringVar(&scoreTenant, "tenant", "", "Tenant UUID (required with --explain)")
	scoreCmd.Flags().StringVar(&scoreJobID, "job-id", "", "Job UUID (required with --explain)")
	scoreCmd.Flags().StringVar(&scoreCandID, "candidate-id", "", "Candidate UUID (required with --explain)")
	scoreCmd.Flags().StringVar(&scoreMode, "mode", "standard", "Operating mode recorded in the explanation fingerprint")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	scoreCmd.MarkFlagRequired("job")
	scoreCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(scoreCmd)
}

// scoreOutput is the JSON document printed by the score command
type scoreOutput struct {
	Breakdown   types.MatchScoreBreakdown `json:"breakdown"`
	Confidence  types.ConfidenceResult    `json:"confidence"`
	Explanation *explain.Result           `json:"explanation,omitempty"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	job, err := readJobProfile(scoreJobPath)
	if err != nil {
		return err
	}
	candidate, err := readCandidateProfile(scoreCandPath)
	if err != nil {
		return err
	}

	breakdown := scoring.ScoreMatch(job, candidate)
	confidence := scoring.AssessConfidence(breakdown, job, candidate)

	if scoreVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintMatchScore(job, breakdown)
		printer.PrintConfidence(confidence)
	}

	output := scoreOutput{Breakdown: breakdown, Confidence: confidence}

	if scoreExplain {
		result, err := explainMatch(ctx, cmd, job, candidate, breakdown, confidence)
		if err != nil {
			return err
		}
		output.Explanation = result
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode score output: %w", err)
	}
	return nil
}

func explainMatch(ctx context.Context, cmd *cobra.Command, job *types.JobProfile, candidate *types.CandidateProfile, breakdown types.MatchScoreBreakdown, confidence types.ConfidenceResult) (*explain.Result, error) {
	tenantID, err := parseTenantID(scoreTenant)
	if err != nil {
		return nil, err
	}
	jobID, err := parseRequiredUUID(scoreJobID, "--job-id")
	if err != nil {
		return nil, err
	}
	candidateID, err := parseRequiredUUID(scoreCandID, "--candidate-id")
	if err != nil {
		return nil, err
	}

	cfg, err := loadCommandConfig(scoreConfigPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = scoreDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if err := resolveDatabaseURL(&cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required with --explain")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	service := explain.NewService(database, client, log)
	return service.Explain(ctx, &explain.Request{
		TenantID:    tenantID,
		JobID:       jobID,
		CandidateID: candidateID,
		Mode:        scoreMode,
		Job:         job,
		Candidate:   candidate,
		Breakdown:   breakdown,
		Confidence:  confidence,
		Force:       scoreForce,
	})
}

func readJobProfile(path string) (*types.JobProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job profile: %w", err)
	}
	var job types.JobProfile
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job profile JSON: %w", err)
	}
	return &job, nil
}

func readCandidateProfile(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate profile: %w", err)
	}
	var candidate types.CandidateProfile
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("failed to parse candidate profile JSON: %w", err)
	}
	return &candidate, nil
}
