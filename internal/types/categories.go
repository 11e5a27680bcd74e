package types

import "strings"

// SkillCategory classifies a skill into a closed set of categories.
type SkillCategory string

// Known skill categories. CategoryOther is the guaranteed catch-all:
// normalization never rejects an input string.
const (
	CategoryProgrammingLanguage SkillCategory = "programming_language"
	CategoryFramework           SkillCategory = "framework"
	CategoryLibrary             SkillCategory = "library"
	CategoryTool                SkillCategory = "tool"
	CategoryPlatform            SkillCategory = "platform"
	CategorySoftSkill           SkillCategory = "soft_skill"
	CategoryDomainKnowledge     SkillCategory = "domain_knowledge"
	CategoryDatabase            SkillCategory = "database"
	CategoryCloud               SkillCategory = "cloud"
	CategoryDevOps              SkillCategory = "devops"
	CategoryMethodology         SkillCategory = "methodology"
	CategoryOther               SkillCategory = "other"
)

var validCategories = map[SkillCategory]bool{
	CategoryProgrammingLanguage: true,
	CategoryFramework:           true,
	CategoryLibrary:             true,
	CategoryTool:                true,
	CategoryPlatform:            true,
	CategorySoftSkill:           true,
	CategoryDomainKnowledge:     true,
	CategoryDatabase:            true,
	CategoryCloud:               true,
	CategoryDevOps:              true,
	CategoryMethodology:         true,
	CategoryOther:               true,
}

// categoryAliases maps common free-text variations produced by the model
// to canonical categories.
var categoryAliases = map[string]SkillCategory{
	// AI/ML related
	"ai_machine_learning":     CategoryDomainKnowledge,
	"machine_learning":        CategoryDomainKnowledge,
	"artificial_intelligence": CategoryDomainKnowledge,
	"ai":                      CategoryDomainKnowledge,
	"ml":                      CategoryDomainKnowledge,
	"data_science":            CategoryDomainKnowledge,
	"data_analytics":          CategoryDomainKnowledge,
	"nlp":                     CategoryDomainKnowledge,
	"computer_vision":         CategoryDomainKnowledge,
	// Framework/library variations
	"framework_library":    CategoryLibrary,
	"frameworks_libraries": CategoryLibrary,
	// Web related
	"web_development": CategoryFramework,
	"frontend":        CategoryFramework,
	"backend":         CategoryFramework,
	"web_framework":   CategoryFramework,
	// Tool/platform variations
	"tool_platform":   CategoryTool,
	"tools_platforms": CategoryTool,
	// Other common ones
	"language":         CategoryProgrammingLanguage,
	"programming":      CategoryProgrammingLanguage,
	"api":              CategoryTool,
	"testing":          CategoryMethodology,
	"agile":            CategoryMethodology,
	"scrum":            CategoryMethodology,
	"version_control":  CategoryTool,
	"containerization": CategoryDevOps,
	"orchestration":    CategoryDevOps,
	"ci_cd":            CategoryDevOps,
	"infrastructure":   CategoryCloud,
}

// NormalizeCategory canonicalizes a free-text category string into the
// closed SkillCategory set. Unrecognized input maps to CategoryOther;
// this function never fails.
func NormalizeCategory(raw string) SkillCategory {
	if validCategories[SkillCategory(raw)] {
		return SkillCategory(raw)
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "/", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	if validCategories[SkillCategory(normalized)] {
		return SkillCategory(normalized)
	}
	if mapped, ok := categoryAliases[normalized]; ok {
		return mapped
	}
	return CategoryOther
}
