// Package parsing provides normalization helpers for skills, titles, and
// dimension context keys so comparisons across the pipeline stay consistent.
package parsing

import "strings"

// skillVariants maps common skill name variants to a canonical lower-case form
var skillVariants = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"node":       "node.js",
	"nodejs":     "node.js",
	"postgresql": "postgres",
	"psql":       "postgres",
}

// NormalizeSkill lowercases and canonicalizes a skill name for set membership.
// Empty input normalizes to the empty string.
func NormalizeSkill(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillVariants[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeTitle lowercases a job or candidate title and collapses internal
// whitespace, so "Senior  Engineer" and "senior engineer" compare equal.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// NormalizeSeniority normalizes a seniority label for comparison
func NormalizeSeniority(seniority string) string {
	return strings.ToLower(strings.TrimSpace(seniority))
}

// NormalizeContextKey normalizes a client ID or role type used as a dimension
// value: trimmed, lowercased, with whitespace and underscores hyphenated.
func NormalizeContextKey(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	return strings.Join(strings.Fields(normalized), "-")
}

// SkillSet builds a normalized membership set from raw skill names, dropping
// entries that normalize to empty.
func SkillSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if normalized := NormalizeSkill(name); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
