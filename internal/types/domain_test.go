package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateProfileValidate(t *testing.T) {
	valid := &CandidateProfile{
		Summary: "Backend engineer with platform experience",
		Skills: []Skill{
			{Name: "Go", Category: CategoryProgrammingLanguage},
		},
		TotalYearsExperience: 6,
		ExperienceLevel:      LevelSenior,
	}
	require.NoError(t, valid.Validate())

	noSkills := &CandidateProfile{
		Summary:         "Engineer",
		Skills:          []Skill{},
		ExperienceLevel: LevelMid,
	}
	assert.Error(t, noSkills.Validate(), "empty skills must be rejected")

	badEmail := &CandidateProfile{
		Summary:         "Engineer",
		Email:           "not-an-email",
		Skills:          []Skill{{Name: "Python"}},
		ExperienceLevel: LevelMid,
	}
	assert.Error(t, badEmail.Validate())
}

func TestCandidateProfileNormalize(t *testing.T) {
	p := &CandidateProfile{
		Summary: "Data engineer",
		Skills: []Skill{
			{Name: "Python", Category: "Programming"},
			{Name: "Airflow", Category: "Orchestration", Proficiency: "ADVANCED"},
		},
		TotalYearsExperience: 7,
	}
	p.Normalize()

	assert.Equal(t, CategoryProgrammingLanguage, p.Skills[0].Category)
	assert.Equal(t, CategoryDevOps, p.Skills[1].Category)
	// Unknown proficiency strings are cleared, not rejected.
	assert.Equal(t, "", p.Skills[1].Proficiency)
	assert.Equal(t, LevelSenior, p.ExperienceLevel, "level derives from years when absent")
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCandidateProfileNormalizeKeepsExplicitLevel(t *testing.T) {
	p := &CandidateProfile{
		Summary:              "Engineer",
		Skills:               []Skill{{Name: "Go"}},
		TotalYearsExperience: 1,
		ExperienceLevel:      "Lead",
	}
	p.Normalize()
	assert.Equal(t, LevelLead, p.ExperienceLevel, "explicit level wins over years")
}

func TestFitResultValidate(t *testing.T) {
	r := &FitResult{
		OverallFitScore:      82,
		SkillMatchScore:      50,
		ExperienceMatchScore: 25,
	}
	require.NoError(t, r.Validate())

	r.SkillMatchScore = 75
	assert.Error(t, r.Validate(), "skill score above 60 must fail")

	r.SkillMatchScore = 50
	r.OverallFitScore = 130
	assert.Error(t, r.Validate())
}
