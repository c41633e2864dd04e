package types

// MatchScoreBreakdown represents the component scores of a job/candidate match.
// All scores are integers in [0,100], recomputed on demand and never persisted here.
type MatchScoreBreakdown struct {
	SkillOverlapScore    int `json:"skill_overlap_score"`
	TitleSimilarityScore int `json:"title_similarity_score"`
	CompositeScore       int `json:"composite_score"`
}

// ConfidenceResult represents a confidence assessment with human-readable reasons
type ConfidenceResult struct {
	ConfidenceScore int      `json:"confidence_score"`
	Reasons         []string `json:"reasons"`
}
