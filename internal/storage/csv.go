// Package storage persists run outcomes to append-only CSV files:
// one row per candidate per run, and one row per ranked job. The two
// sinks are independent files; a failed write to one does not roll back
// the other.
package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-search-agent/internal/types"
)

const (
	candidatesFile = "candidates.csv"
	resultsFile    = "results.csv"
)

var candidatesHeader = []string{
	"timestamp", "full_name", "experience_level", "work_preference",
	"location", "country", "target_role", "skills_count", "total_experience_years",
}

var resultsHeader = []string{
	"timestamp", "candidate_name", "job_rank", "company", "job_title",
	"tier", "score", "action", "rationale",
}

// RunMeta carries the search parameters that accompany a run in the
// candidate log.
type RunMeta struct {
	WorkPreference string
	Location       string
	Country        string
	TargetRole     string
}

// CSVStore writes to the two CSV sinks under a directory.
type CSVStore struct {
	dir string
}

// NewCSVStore returns a store rooted at dir, creating it if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// SaveRun appends the candidate row and the result rows concurrently.
// The sinks are separate files, so the writes do not contend.
func (s *CSVStore) SaveRun(ctx context.Context, profile *types.CandidateProfile, report *types.RankingReport, meta RunMeta) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return s.AppendCandidate(profile, meta) })
	g.Go(func() error { return s.AppendResults(profile.Name, report) })
	return g.Wait()
}

// AppendCandidate appends one row to candidates.csv.
func (s *CSVStore) AppendCandidate(profile *types.CandidateProfile, meta RunMeta) error {
	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		profile.Name,
		string(profile.ExperienceLevel),
		meta.WorkPreference,
		meta.Location,
		meta.Country,
		meta.TargetRole,
		strconv.Itoa(len(profile.Skills)),
		strconv.FormatFloat(profile.TotalYearsExperience, 'f', 1, 64),
	}
	return s.append(candidatesFile, candidatesHeader, [][]string{row})
}

// AppendResults appends one row per ranked job to results.csv.
func (s *CSVStore) AppendResults(candidateName string, report *types.RankingReport) error {
	now := time.Now().UTC().Format(time.RFC3339)
	rows := make([][]string, 0, len(report.RankedJobs))
	for _, job := range report.RankedJobs {
		rows = append(rows, []string{
			now,
			candidateName,
			strconv.Itoa(job.Rank),
			job.Company,
			job.JobTitle,
			job.Tier,
			strconv.FormatFloat(job.FinalScore, 'f', 1, 64),
			job.Action,
			job.Rationale,
		})
	}
	return s.append(resultsFile, resultsHeader, rows)
}

// append opens the sink, writing the header first on a fresh file.
func (s *CSVStore) append(name string, header []string, rows [][]string) error {
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", path, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
