// Package config provides configuration loading for the CLI and server.
// Configuration is an explicit value passed to the components that need
// it; nothing in this package is a process-wide singleton.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the application configuration, loadable from a JSON file.
// All fields are optional; missing values fall back to defaults or CLI
// flags after merging.
type Config struct {
	// Inputs
	Resume     string `json:"resume,omitempty"`      // Path to the résumé file (pdf, docx, txt)
	TargetRole string `json:"target_role,omitempty"` // Role to search for

	// API keys
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`
	JSearchAPIKey string `json:"jsearch_api_key,omitempty"`

	// Search behavior
	Country string `json:"country,omitempty"`  // Two-letter country code for job search
	MaxJobs int    `json:"max_jobs,omitempty"` // Cap on discovered opportunities

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL, empty disables run persistence
	OutputDir   string `json:"output_dir,omitempty"`   // Directory for CSV result files

	// Server
	ListenAddr string `json:"listen_addr,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv fills API keys and connection strings from the environment
// for any field still empty. Environment never overrides the file.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.JSearchAPIKey == "" {
		c.JSearchAPIKey = os.Getenv("JSEARCH_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks value ranges and referenced paths.
func (c *Config) Validate() error {
	if c.MaxJobs < 0 {
		return fmt.Errorf("config error: 'max_jobs' must be non-negative")
	}
	if c.Country != "" && len(c.Country) != 2 {
		return fmt.Errorf("config error: 'country' must be a two-letter code, got %q", c.Country)
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged; CLI flags win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.TargetRole == "" {
		result.TargetRole = defaults.TargetRole
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.JSearchAPIKey == "" {
		result.JSearchAPIKey = defaults.JSearchAPIKey
	}
	if result.Country == "" {
		result.Country = defaults.Country
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.MaxJobs == 0 {
		result.MaxJobs = defaults.MaxJobs
	}

	if result.Country == "" {
		result.Country = "us"
	}
	if result.OutputDir == "" {
		result.OutputDir = "output"
	}
	if result.ListenAddr == "" {
		result.ListenAddr = ":8080"
	}
	if result.MaxJobs == 0 {
		result.MaxJobs = 5
	}
	return result
}
