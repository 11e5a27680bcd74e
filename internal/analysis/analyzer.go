// Package analysis implements the profile extraction stage: one
// generation call that turns raw résumé text into a validated
// CandidateProfile.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-search-agent/internal/extraction"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/prompts"
	"github.com/jonathan/job-search-agent/internal/schemas"
	"github.com/jonathan/job-search-agent/internal/types"
)

// Analyzer extracts candidate profiles from résumé text.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer returns an Analyzer backed by the given generation client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// ExtractProfile runs the extraction. There is no fallback: a profile
// that cannot be extracted or that fails validation is a hard error,
// because every later stage depends on it.
func (a *Analyzer) ExtractProfile(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &AnalysisError{Op: "extract_profile", Message: "resume text is empty"}
	}

	prompt := prompts.Format(prompts.MustGet("profile.json", "extract_profile"), map[string]string{
		"ResumeText": resumeText,
	})

	response, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &AnalysisError{Op: "extract_profile", Message: "generation call failed", Cause: err}
	}

	var profile types.CandidateProfile
	if err := extraction.Extract(response, schemas.CandidateProfile, &profile); err != nil {
		return nil, err
	}

	profile.Normalize()
	profile.RawResumeText = resumeText
	if err := profile.Validate(); err != nil {
		return nil, &AnalysisError{Op: "extract_profile", Message: "extracted profile is invalid", Cause: err}
	}
	return &profile, nil
}

// AnalysisError wraps failures of the profile extraction stage.
type AnalysisError struct {
	Op      string
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis %s: %s", e.Op, e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }
