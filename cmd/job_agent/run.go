package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-search-agent/internal/analysis"
	"github.com/jonathan/job-search-agent/internal/config"
	"github.com/jonathan/job-search-agent/internal/db"
	"github.com/jonathan/job-search-agent/internal/discovery"
	"github.com/jonathan/job-search-agent/internal/ingestion"
	"github.com/jonathan/job-search-agent/internal/jsearch"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/matching"
	"github.com/jonathan/job-search-agent/internal/observability"
	"github.com/jonathan/job-search-agent/internal/pipeline"
	"github.com/jonathan/job-search-agent/internal/ranking"
	"github.com/jonathan/job-search-agent/internal/storage"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full job search pipeline end-to-end",
	Long: `Orchestrates the entire job search process: resume ingestion -> profile extraction -> opportunity discovery -> fit scoring -> strategic ranking.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runResume        string
	runTargetRole    string
	runCountry       string
	runMaxJobs       int
	runGeminiAPIKey  string
	runJSearchAPIKey string
	runOutputDir     string
	runDatabaseURL   string
	runVerbose       bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to the resume file (pdf, docx, txt, md)")
	runCommand.Flags().StringVarP(&runTargetRole, "role", "t", "", "Target role to search for (defaults to the resume's most recent role)")
	runCommand.Flags().StringVar(&runCountry, "country", "", "Two-letter country code for the job search")
	runCommand.Flags().IntVar(&runMaxJobs, "max-jobs", 0, "Maximum opportunities to score")
	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for CSV result files")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage output")

	// API keys can be passed as flags, or read from env vars
	runCommand.Flags().StringVar(&runGeminiAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runJSearchAPIKey, "jsearch-key", "", "JSearch API Key (optional, defaults to JSEARCH_API_KEY env var)")

	// Database URL for run persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.Load(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("role") {
		cfg.TargetRole = runTargetRole
	}
	if cmd.Flags().Changed("country") {
		cfg.Country = runCountry
	}
	if cmd.Flags().Changed("max-jobs") {
		cfg.MaxJobs = runMaxJobs
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = runGeminiAPIKey
	}
	if cmd.Flags().Changed("jsearch-key") {
		cfg.JSearchAPIKey = runJSearchAPIKey
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Fill remaining secrets from the environment, then defaults
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Config{})

	// Step 4: Validate required fields
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.JSearchAPIKey == "" {
		return fmt.Errorf("JSEARCH_API_KEY environment variable or --jsearch-key flag is required")
	}

	resumeText, err := ingestion.ExtractText(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	search := jsearch.NewClient(cfg.JSearchAPIKey, jsearch.WithCountry(cfg.Country))

	p := pipeline.New(
		analysis.NewAnalyzer(client),
		discovery.NewDiscoverer(client, search).WithMaxJobs(cfg.MaxJobs),
		matching.NewMatcher(client),
		ranking.NewRanker(client),
	)

	// Optional run persistence
	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	runID, err := uuid.Parse(p.RunID())
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}
	if store != nil {
		if err := store.CreateRun(ctx, runID, "", cfg.TargetRole); err != nil {
			return fmt.Errorf("failed to create run record: %w", err)
		}
	}

	report, err := p.Run(ctx, resumeText, cfg.TargetRole)
	if err != nil {
		if store != nil {
			_ = store.SaveArtifact(ctx, runID, "trace", p.Trace())
			_ = store.CompleteRun(ctx, runID, db.StatusFailed)
		}
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintProfile(p.Profile())
		printer.PrintFitResults(p.Fits())
		printer.PrintRanking(report.Ranking)
		printer.PrintTrace(p.Trace())
	}

	csvStore, err := storage.NewCSVStore(cfg.OutputDir)
	if err != nil {
		return err
	}
	meta := storage.RunMeta{Country: cfg.Country, TargetRole: cfg.TargetRole}
	if err := csvStore.SaveRun(ctx, p.Profile(), report.Ranking, meta); err != nil {
		return fmt.Errorf("failed to save CSV results: %w", err)
	}

	if store != nil {
		_ = store.SetCandidateName(ctx, runID, report.CandidateName)
		_ = store.SaveArtifact(ctx, runID, db.StepProfile, p.Profile())
		_ = store.SaveArtifact(ctx, runID, db.StepOpportunities, p.Opportunities())
		_ = store.SaveArtifact(ctx, runID, db.StepFitResults, p.Fits())
		_ = store.SaveArtifact(ctx, runID, db.StepRanking, report.Ranking)
		if err := store.SaveArtifact(ctx, runID, db.StepReport, report); err == nil {
			_ = store.CompleteRun(ctx, runID, db.StatusCompleted)
		}
	}

	fmt.Fprintf(os.Stdout, "Run %s complete for %s\n", report.RunID, report.CandidateName)
	fmt.Fprintf(os.Stdout, "Jobs found: %d, scored: %d, average fit: %.1f/100\n",
		report.JobsFound, report.JobsMatched, report.AverageScore)
	if report.Ranking != nil && report.Ranking.TopRecommendation != "" {
		fmt.Fprintf(os.Stdout, "%s\n", report.Ranking.TopRecommendation)
	}
	fmt.Fprintf(os.Stdout, "Results written to %s\n", filepath.Join(cfg.OutputDir, "results.csv"))
	return nil
}
