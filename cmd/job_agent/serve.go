package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-search-agent/internal/analysis"
	"github.com/jonathan/job-search-agent/internal/config"
	"github.com/jonathan/job-search-agent/internal/db"
	"github.com/jonathan/job-search-agent/internal/discovery"
	"github.com/jonathan/job-search-agent/internal/jsearch"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/matching"
	"github.com/jonathan/job-search-agent/internal/pipeline"
	"github.com/jonathan/job-search-agent/internal/ranking"
	"github.com/jonathan/job-search-agent/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the job search pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	jsearchKey := os.Getenv("JSEARCH_API_KEY")
	if jsearchKey == "" {
		return fmt.Errorf("JSEARCH_API_KEY environment variable is required")
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	search := jsearch.NewClient(jsearchKey)

	// Run persistence is optional; without DATABASE_URL the server still
	// executes pipelines but keeps no history.
	var store *db.Store
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		store, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	srv, err := server.New(server.Config{
		Addr:  serveAddr,
		JWT:   jwtCfg,
		Store: store,
		NewPipeline: func() *pipeline.Pipeline {
			return pipeline.New(
				analysis.NewAnalyzer(client),
				discovery.NewDiscoverer(client, search),
				matching.NewMatcher(client),
				ranking.NewRanker(client),
			)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	defer client.Close()
	return srv.Start()
}
