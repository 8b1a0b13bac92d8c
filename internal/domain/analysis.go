package domain

// Negotiation outcomes as reported by the analyst.
const (
	OutcomeSuccess = "Success"
	OutcomeFailure = "Failure"
	OutcomeNeutral = "Neutral"
)

// AnalysisPoint is one titled observation in an analysis report.
type AnalysisPoint struct {
	Point       string `json:"point"`
	Explanation string `json:"explanation"`
}

// AnalysisReport is the analyst agent's structured post-session report.
type AnalysisReport struct {
	Summary   string          `json:"summary"`
	Outcome   string          `json:"outcome"`
	Strengths []AnalysisPoint `json:"strengths"`
	Mistakes  []AnalysisPoint `json:"mistakes"`
	SkillGaps []string        `json:"skill_gaps"`
}
