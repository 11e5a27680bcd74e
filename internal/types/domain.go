// Package types provides the domain model for the job search pipeline:
// candidate profiles, job opportunities, fit results, and ranking reports.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Skill represents a single candidate skill with optional proficiency data.
type Skill struct {
	Name            string        `json:"name" validate:"required"`
	Category        SkillCategory `json:"category"`
	YearsExperience *float64      `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	Proficiency     string        `json:"proficiency,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// CandidateProfile is the structured representation of a résumé. It is
// created once per pipeline run by the profile extraction stage and read
// thereafter; callers must treat it as immutable.
type CandidateProfile struct {
	Name                 string          `json:"name,omitempty"`
	Email                string          `json:"email,omitempty" validate:"omitempty,email"`
	Summary              string          `json:"summary" validate:"required"`
	Skills               []Skill         `json:"skills" validate:"required,min=1,dive"`
	TotalYearsExperience float64         `json:"total_years_experience" validate:"gte=0"`
	ExperienceLevel      ExperienceLevel `json:"experience_level"`
	PreviousRoles        []string        `json:"previous_roles,omitempty"`
	PreviousCompanies    []string        `json:"previous_companies,omitempty"`
	Education            []string        `json:"education,omitempty"`
	RawResumeText        string          `json:"raw_resume_text,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

var validate = validator.New()

// Validate checks the profile against its structural rules. A profile with
// no skills is invalid: at least one extracted skill is a business
// requirement, not an extraction accident.
func (p *CandidateProfile) Validate() error {
	return validate.Struct(p)
}

// Normalize canonicalizes enum-like fields in place. Skill categories are
// mapped into the closed category set and the experience level is parsed,
// defaulting missing values from total years.
func (p *CandidateProfile) Normalize() {
	for i := range p.Skills {
		p.Skills[i].Category = NormalizeCategory(string(p.Skills[i].Category))
		if p.Skills[i].Proficiency != "" {
			p.Skills[i].Proficiency = normalizeProficiency(p.Skills[i].Proficiency)
		}
	}
	if !p.ExperienceLevel.IsValid() {
		if parsed := ParseExperienceLevel(string(p.ExperienceLevel)); string(p.ExperienceLevel) != "" {
			p.ExperienceLevel = parsed
		} else {
			p.ExperienceLevel = LevelFromYears(p.TotalYearsExperience)
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}

func normalizeProficiency(s string) string {
	switch s {
	case "beginner", "intermediate", "advanced", "expert":
		return s
	default:
		return ""
	}
}

// JobOpportunity represents one job posting produced by the discovery
// collaborator. Instances are immutable after creation.
type JobOpportunity struct {
	OpportunityID           string          `json:"opportunity_id"`
	Title                   string          `json:"title"`
	Company                 string          `json:"company"`
	Description             string          `json:"description"`
	RequiredSkills          []string        `json:"required_skills,omitempty"`
	PreferredSkills         []string        `json:"preferred_skills,omitempty"`
	RequiredExperienceLevel ExperienceLevel `json:"required_experience_level"`
	Location                string          `json:"location,omitempty"`
	SalaryRange             string          `json:"salary_range,omitempty"`
	RemotePolicy            string          `json:"remote_policy,omitempty"`
	PostedAt                *time.Time      `json:"posted_at,omitempty"`
	URL                     string          `json:"url,omitempty"`
}

// SkillAlignment describes how one required or preferred skill compares
// between candidate and job.
type SkillAlignment struct {
	SkillName      string   `json:"skill_name"`
	CandidateHas   bool     `json:"candidate_has"`
	CandidateYears *float64 `json:"candidate_years,omitempty"`
	RequiredYears  *float64 `json:"required_years,omitempty"`
	MatchStrength  float64  `json:"match_strength" validate:"gte=0,lte=1"`
	IsRequired     bool     `json:"is_required"`
}

// FitResult is the complete evaluation of one candidate against one job.
// overall_fit_score is expected to equal skill + experience scores plus an
// unscored profile-strength component of at most 10; the producer enforces
// this, the struct does not.
type FitResult struct {
	Candidate            *CandidateProfile `json:"candidate_profile"`
	Opportunity          *JobOpportunity   `json:"job_opportunity"`
	SkillAlignments      []SkillAlignment  `json:"skill_alignments"`
	OverallFitScore      float64           `json:"overall_fit_score" validate:"gte=0,lte=100"`
	SkillMatchScore      float64           `json:"skill_match_score" validate:"gte=0,lte=60"`
	ExperienceMatchScore float64           `json:"experience_match_score" validate:"gte=0,lte=30"`
	Strengths            []string          `json:"strengths,omitempty"`
	Gaps                 []string          `json:"gaps,omitempty"`
	Recommendation       string            `json:"recommendation"`
	Explanation          string            `json:"explanation"`
	EvaluatedAt          time.Time         `json:"evaluated_at"`
}

// Validate checks score ranges on the fit result.
func (r *FitResult) Validate() error {
	return validate.Struct(r)
}

// RankedJob is one entry in a ranking report.
type RankedJob struct {
	Rank       int     `json:"rank"`
	JobTitle   string  `json:"job_title"`
	Company    string  `json:"company"`
	Tier       string  `json:"tier"`
	FinalScore float64 `json:"final_score"`
	Rationale  string  `json:"ranking_rationale"`
	Action     string  `json:"action_recommendation"`
}

// RankingReport is the terminal artifact of the ranking stage.
type RankingReport struct {
	RankedJobs        []RankedJob `json:"ranked_jobs"`
	OverallStrategy   string      `json:"overall_strategy"`
	TopRecommendation string      `json:"top_recommendation"`
}
