package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"target_role": "backend engineer",
		"country": "de",
		"max_jobs": 8
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "backend engineer", cfg.TargetRole)
	assert.Equal(t, "de", cfg.Country)
	assert.Equal(t, 8, cfg.MaxJobs)
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("empty path must fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file must fail")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	if _, err := Load(bad); err == nil {
		t.Error("invalid JSON must fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{MaxJobs: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Country: "usa"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Resume: filepath.Join(t.TempDir(), "nope.pdf")}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Country: "us", MaxJobs: 5}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{TargetRole: "data engineer"}
	merged := cfg.MergeWithDefaults(Config{
		TargetRole: "ignored",
		Country:    "gb",
		MaxJobs:    3,
	})

	assert.Equal(t, "data engineer", merged.TargetRole, "own value wins")
	assert.Equal(t, "gb", merged.Country)
	assert.Equal(t, 3, merged.MaxJobs)
	// Built-in defaults fill whatever remains.
	assert.Equal(t, "output", merged.OutputDir)
	assert.Equal(t, ":8080", merged.ListenAddr)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg := &Config{GeminiAPIKey: "file-key"}
	cfg.FromEnv()

	assert.Equal(t, "file-key", cfg.GeminiAPIKey, "file value wins over env")
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
}
