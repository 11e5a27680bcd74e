package types

import "strings"

// ExperienceLevel represents a standardized seniority level.
type ExperienceLevel string

// Experience levels, ordered from most junior to most senior.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelJunior    ExperienceLevel = "junior"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelPrincipal ExperienceLevel = "principal"
)

// levelOrder defines the ordinal position of each level for distance
// computations: entry < junior < mid < senior < lead < principal.
var levelOrder = map[ExperienceLevel]int{
	LevelEntry:     0,
	LevelJunior:    1,
	LevelMid:       2,
	LevelSenior:    3,
	LevelLead:      4,
	LevelPrincipal: 5,
}

// ParseExperienceLevel normalizes a free-text level string to a known
// ExperienceLevel. Unrecognized or empty input defaults to entry.
func ParseExperienceLevel(s string) ExperienceLevel {
	level := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levelOrder[level]; ok {
		return level
	}
	return LevelEntry
}

// IsValid reports whether the level is one of the known values.
func (l ExperienceLevel) IsValid() bool {
	_, ok := levelOrder[l]
	return ok
}

// LevelFromYears maps total years of professional experience to a level
// using the thresholds embedded in the profile extraction instructions:
// 0-2y entry, 2-5y mid, 5-10y senior, 10y+ lead.
func LevelFromYears(years float64) ExperienceLevel {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 10:
		return LevelSenior
	default:
		return LevelLead
	}
}

// LevelDistance returns the absolute ordinal distance between two levels.
// Unknown levels are treated as entry.
func LevelDistance(a, b ExperienceLevel) int {
	ai, ok := levelOrder[a]
	if !ok {
		ai = 0
	}
	bi, ok := levelOrder[b]
	if !ok {
		bi = 0
	}
	if ai > bi {
		return ai - bi
	}
	return bi - ai
}

// LevelAbove reports whether a is strictly more senior than b.
func LevelAbove(a, b ExperienceLevel) bool {
	return levelOrder[a] > levelOrder[b]
}
