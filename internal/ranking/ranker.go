// Package ranking implements the strategic ranking stage. It is the
// terminal stage and never fails: degenerate inputs get deterministic
// reports and an unparseable generation falls back to a score sort.
package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/jonathan/job-search-agent/internal/extraction"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/prompts"
	"github.com/jonathan/job-search-agent/internal/schemas"
	"github.com/jonathan/job-search-agent/internal/types"
)

// singleTierThreshold splits the one-opportunity case between the top
// two tiers.
const singleTierThreshold = 70

// Ranker runs the strategic ranking stage.
type Ranker struct {
	client llm.Client
}

// NewRanker returns a Ranker backed by the given generation client.
func NewRanker(client llm.Client) *Ranker {
	return &Ranker{client: client}
}

// Result is the ranking outcome. Notes records fallbacks taken.
type Result struct {
	Report *types.RankingReport
	Notes  []string
}

// Rank produces the final ranking report. Zero and one-element inputs
// are handled without a generation call; two or more go through the
// weighted-criteria prompt with a deterministic fallback.
func (r *Ranker) Rank(ctx context.Context, profile *types.CandidateProfile, fits []*types.FitResult) *Result {
	switch len(fits) {
	case 0:
		return &Result{Report: emptyReport()}
	case 1:
		return &Result{Report: singleReport(fits[0])}
	}

	report, err := r.rankWithModel(ctx, profile, fits)
	if err != nil {
		return &Result{
			Report: fallbackReport(fits),
			Notes:  []string{fmt.Sprintf("ranking call unusable, ranked by match score: %v", err)},
		}
	}
	return &Result{Report: report}
}

func (r *Ranker) rankWithModel(ctx context.Context, profile *types.CandidateProfile, fits []*types.FitResult) (*types.RankingReport, error) {
	fitsJSON, err := json.Marshal(fits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fit results: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("ranking.json", "rank_opportunities"), map[string]string{
		"CandidateName":   profile.Name,
		"ExperienceLevel": string(profile.ExperienceLevel),
		"TotalYears":      strconv.FormatFloat(profile.TotalYearsExperience, 'f', -1, 64),
		"FitResultsJSON":  string(fitsJSON),
	})

	response, err := r.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var report types.RankingReport
	if err := extraction.Extract(response, schemas.RankingReport, &report); err != nil {
		return nil, err
	}
	if len(report.RankedJobs) == 0 {
		return nil, fmt.Errorf("ranking returned no jobs")
	}
	return &report, nil
}

// emptyReport is the fixed advisory report for a run that found no
// scoreable opportunities.
func emptyReport() *types.RankingReport {
	return &types.RankingReport{
		RankedJobs:        []types.RankedJob{},
		OverallStrategy:   "No opportunities were available to rank. Broaden the search terms or target role and run the search again.",
		TopRecommendation: "No recommendation available.",
	}
}

// singleReport ranks a lone opportunity without a generation call.
func singleReport(fit *types.FitResult) *types.RankingReport {
	tier := types.Tier2
	if fit.OverallFitScore >= singleTierThreshold {
		tier = types.Tier1
	}
	job := rankedJob(1, fit, tier)
	job.Action = types.ActionApplyImmediately
	return &types.RankingReport{
		RankedJobs:      []types.RankedJob{job},
		OverallStrategy: "Only one opportunity was evaluated. Apply and keep searching in parallel.",
		TopRecommendation: fmt.Sprintf("Start with %s at %s",
			fit.Opportunity.Title, fit.Opportunity.Company),
	}
}

// fallbackReport sorts by match score and assigns tiers by threshold.
func fallbackReport(fits []*types.FitResult) *types.RankingReport {
	sorted := make([]*types.FitResult, len(fits))
	copy(sorted, fits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallFitScore > sorted[j].OverallFitScore
	})

	jobs := make([]types.RankedJob, len(sorted))
	for i, fit := range sorted {
		tier := types.TierForScore(fit.OverallFitScore)
		job := rankedJob(i+1, fit, tier)
		job.Action = types.ActionForTier(tier)
		jobs[i] = job
	}

	return &types.RankingReport{
		RankedJobs:      jobs,
		OverallStrategy: "Opportunities are ranked by match score. Work from the top of the list down.",
		TopRecommendation: fmt.Sprintf("Start with %s at %s",
			sorted[0].Opportunity.Title, sorted[0].Opportunity.Company),
	}
}

func rankedJob(rank int, fit *types.FitResult, tier string) types.RankedJob {
	return types.RankedJob{
		Rank:       rank,
		JobTitle:   fit.Opportunity.Title,
		Company:    fit.Opportunity.Company,
		Tier:       tier,
		FinalScore: fit.OverallFitScore,
		Rationale:  fmt.Sprintf("Ranked by match score (%.0f/100)", fit.OverallFitScore),
	}
}
