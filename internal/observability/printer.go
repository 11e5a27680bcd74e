// Package observability provides formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/job-search-agent/internal/pipeline"
	"github.com/jonathan/job-search-agent/internal/types"
)

const (
	boxWidth       = 60
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a summary of the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Level:  %s (%.1f years)\n", profile.ExperienceLevel, profile.TotalYearsExperience))
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := profile.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", skill.Name, skill.Category))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitResults outputs the scored opportunities, best first.
func (p *Printer) PrintFitResults(fits []*types.FitResult) {
	if len(fits) == 0 {
		return
	}

	sorted := make([]*types.FitResult, len(fits))
	copy(sorted, fits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallFitScore > sorted[j].OverallFitScore
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Opportunities scored: %d\n\n", len(sorted)))

	count := min(len(sorted), maxItemsToShow)
	for i := 0; i < count; i++ {
		fit := sorted[i]
		sb.WriteString(fmt.Sprintf("#%d  %s at %s\n", i+1, fit.Opportunity.Title, fit.Opportunity.Company))
		sb.WriteString(fmt.Sprintf("    Score: %.0f/100 (skills %.0f, experience %.0f)\n",
			fit.OverallFitScore, fit.SkillMatchScore, fit.ExperienceMatchScore))
		sb.WriteString(fmt.Sprintf("    %s\n", fit.Recommendation))
	}
	if len(sorted) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(sorted)-maxItemsToShow))
	}

	p.printBox("FIT SCORING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the final ranking report.
func (p *Printer) PrintRanking(report *types.RankingReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if len(report.RankedJobs) == 0 {
		sb.WriteString("No opportunities to rank.\n")
	}
	for _, job := range report.RankedJobs {
		sb.WriteString(fmt.Sprintf("#%d  [%s] %s at %s (%.0f)\n",
			job.Rank, job.Tier, job.JobTitle, job.Company, job.FinalScore))
		if job.Action != "" {
			sb.WriteString(fmt.Sprintf("    → %s\n", job.Action))
		}
	}
	if report.TopRecommendation != "" {
		sb.WriteString("\n")
		sb.WriteString(report.TopRecommendation)
		sb.WriteString("\n")
	}

	p.printBox("STRATEGIC RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrace outputs the execution log of a run.
func (p *Printer) PrintTrace(trace []pipeline.TraceEntry) {
	if len(trace) == 0 {
		return
	}

	var sb strings.Builder
	for _, entry := range trace {
		sb.WriteString(fmt.Sprintf("%s  %-22s %s\n",
			entry.Timestamp.Format("15:04:05"), entry.Stage, entry.Message))
	}

	p.printBox("EXECUTION LOG", strings.TrimSuffix(sb.String(), "\n"))
}
