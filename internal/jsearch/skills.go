package jsearch

import (
	"sort"
	"strings"

	"github.com/jonathan/job-search-agent/internal/types"
)

// levelFromTitle infers the required seniority from the job title.
// Titles without a seniority marker default to mid.
func levelFromTitle(title string) types.ExperienceLevel {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "principal") || strings.Contains(lower, "staff"):
		return types.LevelPrincipal
	case strings.Contains(lower, "lead") || strings.Contains(lower, "manager"):
		return types.LevelLead
	case strings.Contains(lower, "senior") || strings.Contains(lower, "sr."):
		return types.LevelSenior
	case strings.Contains(lower, "junior") || strings.Contains(lower, "jr."):
		return types.LevelJunior
	case strings.Contains(lower, "intern") || strings.Contains(lower, "entry"):
		return types.LevelEntry
	default:
		return types.LevelMid
	}
}

// skillKeywords is the vocabulary scanned for in job descriptions.
// Matching is whole-word and case-insensitive; the canonical casing on
// the right is what lands in the opportunity.
var skillKeywords = map[string]string{
	"python":           "Python",
	"java":             "Java",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"golang":           "Go",
	"rust":             "Rust",
	"c++":              "C++",
	"c#":               "C#",
	"ruby":             "Ruby",
	"php":              "PHP",
	"swift":            "Swift",
	"kotlin":           "Kotlin",
	"scala":            "Scala",
	"react":            "React",
	"angular":          "Angular",
	"vue":              "Vue",
	"node.js":          "Node.js",
	"django":           "Django",
	"flask":            "Flask",
	"spring":           "Spring",
	"rails":            "Rails",
	".net":             ".NET",
	"sql":              "SQL",
	"postgresql":       "PostgreSQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"redis":            "Redis",
	"elasticsearch":    "Elasticsearch",
	"kafka":            "Kafka",
	"aws":              "AWS",
	"azure":            "Azure",
	"gcp":              "GCP",
	"docker":           "Docker",
	"kubernetes":       "Kubernetes",
	"terraform":        "Terraform",
	"ansible":          "Ansible",
	"jenkins":          "Jenkins",
	"git":              "Git",
	"linux":            "Linux",
	"graphql":          "GraphQL",
	"rest":             "REST",
	"grpc":             "gRPC",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"pandas":           "Pandas",
	"spark":            "Spark",
	"airflow":          "Airflow",
	"agile":            "Agile",
	"scrum":            "Scrum",
	"ci/cd":            "CI/CD",
	"microservices":    "Microservices",
}

// ExtractSkillKeywords scans a description for known skill keywords.
// It is deliberately dumb: no stemming, no NLP, just vocabulary hits,
// which is enough to seed the fit-scoring stage with required skills.
func ExtractSkillKeywords(description string) []string {
	if description == "" {
		return nil
	}
	lower := strings.ToLower(description)

	var found []string
	seen := make(map[string]bool)
	for keyword, canonical := range skillKeywords {
		if seen[canonical] {
			continue
		}
		if containsWord(lower, keyword) {
			found = append(found, canonical)
			seen[canonical] = true
		}
	}
	// Map iteration order is random; keep output stable.
	sort.Strings(found)
	return found
}

// containsWord reports whether needle occurs in haystack bounded by
// non-alphanumeric characters.
func containsWord(haystack, needle string) bool {
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || !isWordChar(haystack[i-1])
		end := i + len(needle)
		after := end == len(haystack) || !isWordChar(haystack[end])
		if before && after {
			return true
		}
		from = i + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
