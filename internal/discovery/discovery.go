// Package discovery implements the opportunity discovery stage: fetch
// raw postings through a search collaborator, then let a generation
// call pick the best fits. The stage never fails; every defect path
// degrades to a deterministic fallback and is noted in the result.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-search-agent/internal/extraction"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/prompts"
	"github.com/jonathan/job-search-agent/internal/schemas"
	"github.com/jonathan/job-search-agent/internal/types"
)

// Searcher is the job-search collaborator. jsearch.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.JobOpportunity, error)
}

const (
	// rawFetchLimit caps how many postings are pulled per search.
	rawFetchLimit = 10
	// minRecommended is the floor under which a selection is considered
	// over-filtered and the raw list is used instead.
	minRecommended = 3
	// defaultMaxJobs bounds the final opportunity list.
	defaultMaxJobs = 5
)

// Discoverer runs the discovery stage.
type Discoverer struct {
	client   llm.Client
	searcher Searcher
	maxJobs  int
}

// NewDiscoverer wires the stage with its two collaborators.
func NewDiscoverer(client llm.Client, searcher Searcher) *Discoverer {
	return &Discoverer{client: client, searcher: searcher, maxJobs: defaultMaxJobs}
}

// WithMaxJobs overrides the cap on the final opportunity list.
// Non-positive values keep the default.
func (d *Discoverer) WithMaxJobs(n int) *Discoverer {
	if n > 0 {
		d.maxJobs = n
	}
	return d
}

// Result is the discovery outcome. Notes records every degradation the
// stage absorbed; an empty Opportunities slice is a legitimate result.
type Result struct {
	Opportunities []types.JobOpportunity
	Notes         []string
}

// Discover fetches and curates opportunities for the profile. It never
// returns an error: search failures yield an empty result, and
// selection failures fall back to the raw postings.
func (d *Discoverer) Discover(ctx context.Context, profile *types.CandidateProfile, targetRole string) *Result {
	result := &Result{}

	query := buildQuery(profile, targetRole)
	raw, err := d.searcher.Search(ctx, query, rawFetchLimit)
	if err != nil {
		result.Notes = append(result.Notes, fmt.Sprintf("search failed: %v", err))
		return result
	}
	if len(raw) == 0 {
		result.Notes = append(result.Notes, "search returned no postings")
		return result
	}

	selected, note := d.selectJobs(ctx, profile, targetRole, raw)
	if note != "" {
		result.Notes = append(result.Notes, note)
	}
	result.Opportunities = finalize(selected, d.maxJobs)
	return result
}

// selectJobs asks the model to curate the raw postings. The selection
// names postings by opportunity_id; job data always comes from the
// search results, never from the model response. Any failure in the
// round trip falls back to the raw list.
func (d *Discoverer) selectJobs(ctx context.Context, profile *types.CandidateProfile, targetRole string, raw []types.JobOpportunity) ([]types.JobOpportunity, string) {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return raw, fmt.Sprintf("could not encode postings, using raw list: %v", err)
	}

	skillNames := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skillNames = append(skillNames, s.Name)
	}

	prompt := prompts.Format(prompts.MustGet("discovery.json", "select_jobs"), map[string]string{
		"CandidateSummary": profile.Summary,
		"CandidateSkills":  strings.Join(skillNames, ", "),
		"ExperienceLevel":  string(profile.ExperienceLevel),
		"TotalYears":       strconv.FormatFloat(profile.TotalYearsExperience, 'f', -1, 64),
		"TargetRole":       targetRole,
		"RawJobs":          string(rawJSON),
		"MaxJobs":          strconv.Itoa(d.maxJobs),
	})

	response, err := d.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return raw, fmt.Sprintf("selection call failed, using raw list: %v", err)
	}

	var selection struct {
		RecommendedJobs []struct {
			OpportunityID string `json:"opportunity_id"`
		} `json:"recommended_jobs"`
	}
	if err := extraction.Extract(response, schemas.DiscoverySelection, &selection); err != nil {
		return raw, fmt.Sprintf("selection unparseable, using raw list: %v", err)
	}

	rawIDs := make(map[string]bool, len(raw))
	for _, job := range raw {
		rawIDs[job.OpportunityID] = true
	}

	unknown := 0
	keep := make(map[string]bool, len(selection.RecommendedJobs))
	for _, rec := range selection.RecommendedJobs {
		if !rawIDs[rec.OpportunityID] {
			unknown++
			continue
		}
		keep[rec.OpportunityID] = true
	}

	selected := make([]types.JobOpportunity, 0, len(keep))
	for _, job := range raw {
		if keep[job.OpportunityID] {
			selected = append(selected, job)
		}
	}

	if len(selected) < minRecommended {
		return raw, fmt.Sprintf("selection kept %d postings (minimum %d), using raw list",
			len(selected), minRecommended)
	}
	if unknown > 0 {
		return selected, fmt.Sprintf("selection referenced %d unknown posting id(s)", unknown)
	}
	return selected, ""
}

func buildQuery(profile *types.CandidateProfile, targetRole string) string {
	if targetRole != "" {
		return targetRole
	}
	if len(profile.PreviousRoles) > 0 {
		return profile.PreviousRoles[0]
	}
	return "software engineer"
}

// finalize caps the list and normalizes fields a searcher may have
// left unset.
func finalize(jobs []types.JobOpportunity, max int) []types.JobOpportunity {
	if len(jobs) > max {
		jobs = jobs[:max]
	}
	out := make([]types.JobOpportunity, len(jobs))
	for i, job := range jobs {
		if job.OpportunityID == "" {
			job.OpportunityID = uuid.NewString()
		}
		if job.RequiredExperienceLevel != "" && !job.RequiredExperienceLevel.IsValid() {
			job.RequiredExperienceLevel = types.ParseExperienceLevel(string(job.RequiredExperienceLevel))
		}
		out[i] = job
	}
	return out
}
