package pipeline

import (
	"fmt"
	"time"

	"github.com/jonathan/job-search-agent/internal/types"
)

// Report is the terminal artifact of a run.
type Report struct {
	RunID            string                `json:"run_id"`
	CandidateName    string                `json:"candidate_name"`
	CandidateSummary string                `json:"candidate_summary"`
	ExperienceLevel  types.ExperienceLevel `json:"experience_level"`
	JobsFound        int                   `json:"jobs_found"`
	JobsMatched      int                   `json:"jobs_matched"`
	AverageScore     float64               `json:"average_score"`
	Ranking          *types.RankingReport  `json:"ranking"`
	Recommendations  []string              `json:"recommendations"`
	Trace            []TraceEntry          `json:"execution_log"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// BuildReport assembles the terminal report and moves the run to its
// final state.
func (p *Pipeline) BuildReport() (*Report, error) {
	const stage = "report"
	if err := p.require(stage, StateRankingReady); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:            p.runID,
		CandidateName:    p.profile.Name,
		CandidateSummary: p.profile.Summary,
		ExperienceLevel:  p.profile.ExperienceLevel,
		JobsFound:        len(p.opportunities),
		JobsMatched:      len(p.fits),
		AverageScore:     meanScore(p.fits),
		Ranking:          p.ranking,
		Recommendations:  recommendations(p.fits),
		GeneratedAt:      time.Now().UTC(),
	}

	p.state = StateReportReady
	p.log(stage, "report generated: %d found, %d matched, average score %.1f",
		report.JobsFound, report.JobsMatched, report.AverageScore)
	report.Trace = p.trace
	return report, nil
}

func meanScore(fits []*types.FitResult) float64 {
	if len(fits) == 0 {
		return 0
	}
	var sum float64
	for _, fit := range fits {
		sum += fit.OverallFitScore
	}
	return sum / float64(len(fits))
}

func recommendations(fits []*types.FitResult) []string {
	out := make([]string, 0, len(fits))
	for _, fit := range fits {
		out = append(out, fmt.Sprintf("%s at %s: %s",
			fit.Opportunity.Title, fit.Opportunity.Company, fit.Recommendation))
	}
	return out
}
