// Package pipeline orchestrates the job search run: profile extraction,
// opportunity discovery, fit scoring, and strategic ranking, with an
// explicit state machine guarding stage order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-search-agent/internal/analysis"
	"github.com/jonathan/job-search-agent/internal/discovery"
	"github.com/jonathan/job-search-agent/internal/matching"
	"github.com/jonathan/job-search-agent/internal/ranking"
	"github.com/jonathan/job-search-agent/internal/types"
)

// State names the progress of a run. Stages only fire from the state
// immediately before theirs; anything else is a precondition violation
// caught before any generation call is made.
type State string

const (
	StateEmpty              State = "empty"
	StateProfileReady       State = "profile_ready"
	StateOpportunitiesReady State = "opportunities_ready"
	StateScoresReady        State = "scores_ready"
	StateRankingReady       State = "ranking_ready"
	StateReportReady        State = "report_ready"
)

// PreconditionError reports a stage invoked out of order.
type PreconditionError struct {
	Stage    string
	State    State
	Required State
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("stage %s requires state %s, current state is %s", e.Stage, e.Required, e.State)
}

// TraceEntry is one timestamped line of the execution log.
type TraceEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
}

// Pipeline is a single-use run. Create one per résumé; it is not safe
// for concurrent use.
type Pipeline struct {
	analyzer   *analysis.Analyzer
	discoverer *discovery.Discoverer
	matcher    *matching.Matcher
	ranker     *ranking.Ranker

	runID string
	state State
	trace []TraceEntry

	profile       *types.CandidateProfile
	opportunities []types.JobOpportunity
	fits          []*types.FitResult
	ranking       *types.RankingReport
}

// New assembles a pipeline from its four stages.
func New(analyzer *analysis.Analyzer, discoverer *discovery.Discoverer, matcher *matching.Matcher, ranker *ranking.Ranker) *Pipeline {
	return &Pipeline{
		analyzer:   analyzer,
		discoverer: discoverer,
		matcher:    matcher,
		ranker:     ranker,
		runID:      uuid.NewString(),
		state:      StateEmpty,
	}
}

// RunID identifies this run in storage and logs.
func (p *Pipeline) RunID() string { return p.runID }

// State returns the current run state.
func (p *Pipeline) State() State { return p.state }

// Trace returns the execution log accumulated so far. The log is
// append-only; every stage attempt lands here, failures included.
func (p *Pipeline) Trace() []TraceEntry { return p.trace }

// Profile returns the extracted profile, nil before profile_ready.
func (p *Pipeline) Profile() *types.CandidateProfile { return p.profile }

// Opportunities returns the discovered opportunities.
func (p *Pipeline) Opportunities() []types.JobOpportunity { return p.opportunities }

// Fits returns the scored fit results.
func (p *Pipeline) Fits() []*types.FitResult { return p.fits }

func (p *Pipeline) log(stage, format string, args ...any) {
	p.trace = append(p.trace, TraceEntry{
		Timestamp: time.Now().UTC(),
		Stage:     stage,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (p *Pipeline) require(stage string, required State) error {
	if p.state != required {
		err := &PreconditionError{Stage: stage, State: p.state, Required: required}
		p.log(stage, "precondition failed: %v", err)
		return err
	}
	return nil
}

// ExtractProfile runs the profile extraction stage.
func (p *Pipeline) ExtractProfile(ctx context.Context, resumeText string) error {
	const stage = "profile_extraction"
	if err := p.require(stage, StateEmpty); err != nil {
		return err
	}
	p.log(stage, "started")

	profile, err := p.analyzer.ExtractProfile(ctx, resumeText)
	if err != nil {
		p.log(stage, "failed: %v", err)
		return err
	}

	p.profile = profile
	p.state = StateProfileReady
	p.log(stage, "extracted profile for %q with %d skills", profile.Name, len(profile.Skills))
	return nil
}

// DiscoverOpportunities runs the discovery stage. It cannot fail; a run
// with zero opportunities still advances.
func (p *Pipeline) DiscoverOpportunities(ctx context.Context, targetRole string) error {
	const stage = "opportunity_discovery"
	if err := p.require(stage, StateProfileReady); err != nil {
		return err
	}
	p.log(stage, "started")

	result := p.discoverer.Discover(ctx, p.profile, targetRole)
	for _, note := range result.Notes {
		p.log(stage, "%s", note)
	}

	p.opportunities = result.Opportunities
	p.state = StateOpportunitiesReady
	p.log(stage, "discovered %d opportunities", len(result.Opportunities))
	return nil
}

// ScoreOpportunities runs the batched fit scoring stage.
func (p *Pipeline) ScoreOpportunities(ctx context.Context) error {
	const stage = "fit_scoring"
	if err := p.require(stage, StateOpportunitiesReady); err != nil {
		return err
	}
	p.log(stage, "started")

	if len(p.opportunities) == 0 {
		p.fits = nil
		p.state = StateScoresReady
		p.log(stage, "no opportunities to score")
		return nil
	}

	batch, err := p.matcher.ScoreFitBatch(ctx, p.profile, p.opportunities)
	if err != nil {
		p.log(stage, "failed: %v", err)
		return err
	}
	for _, note := range batch.Notes {
		p.log(stage, "%s", note)
	}

	p.fits = batch.Results
	p.state = StateScoresReady
	p.log(stage, "scored %d of %d opportunities", len(batch.Results), len(p.opportunities))
	return nil
}

// RankOpportunities runs the strategic ranking stage. It cannot fail.
func (p *Pipeline) RankOpportunities(ctx context.Context) error {
	const stage = "strategic_ranking"
	if err := p.require(stage, StateScoresReady); err != nil {
		return err
	}
	p.log(stage, "started")

	result := p.ranker.Rank(ctx, p.profile, p.fits)
	for _, note := range result.Notes {
		p.log(stage, "%s", note)
	}

	p.ranking = result.Report
	p.state = StateRankingReady
	p.log(stage, "ranked %d opportunities", len(result.Report.RankedJobs))
	return nil
}

// Run executes the whole pipeline and builds the terminal report.
func (p *Pipeline) Run(ctx context.Context, resumeText, targetRole string) (*Report, error) {
	if err := p.ExtractProfile(ctx, resumeText); err != nil {
		return nil, err
	}
	if err := p.DiscoverOpportunities(ctx, targetRole); err != nil {
		return nil, err
	}
	if err := p.ScoreOpportunities(ctx); err != nil {
		return nil, err
	}
	if err := p.RankOpportunities(ctx); err != nil {
		return nil, err
	}
	return p.BuildReport()
}
