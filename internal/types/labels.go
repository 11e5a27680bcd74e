package types

// Recommendation labels attached to fit results. These are contract
// strings consumed by downstream reports and must not be reworded.
const (
	RecommendationStrong   = "Strong Match - Recommend Interview"
	RecommendationGood     = "Good Match - Consider for Interview"
	RecommendationModerate = "Moderate Match - Review Carefully"
	RecommendationWeak     = "Weak Match - Likely Not Suitable"
)

// Ranking tiers, best first.
const (
	Tier1 = "TIER 1"
	Tier2 = "TIER 2"
	Tier3 = "TIER 3"
	Tier4 = "TIER 4"
)

// Action recommendations paired with tiers in deterministic rankings.
const (
	ActionApplyImmediately = "Apply immediately"
	ActionApplyThisWeek    = "Apply this week"
	ActionConsiderApplying = "Consider applying"
	ActionKeepAsBackup     = "Keep as backup"
)

// RecommendationForScore maps an overall fit score to its label.
// Boundaries: 75 and above is strong, 60 to 74 good, 50 to 59 moderate,
// below 50 weak.
func RecommendationForScore(score float64) string {
	switch {
	case score >= 75:
		return RecommendationStrong
	case score >= 60:
		return RecommendationGood
	case score >= 50:
		return RecommendationModerate
	default:
		return RecommendationWeak
	}
}

// TierForScore maps a final score to its ranking tier using the
// deterministic fallback thresholds.
func TierForScore(score float64) string {
	switch {
	case score >= 75:
		return Tier1
	case score >= 60:
		return Tier2
	case score >= 50:
		return Tier3
	default:
		return Tier4
	}
}

// ActionForTier returns the action recommendation paired with a tier.
func ActionForTier(tier string) string {
	switch tier {
	case Tier1:
		return ActionApplyImmediately
	case Tier2:
		return ActionApplyThisWeek
	case Tier3:
		return ActionConsiderApplying
	default:
		return ActionKeepAsBackup
	}
}
