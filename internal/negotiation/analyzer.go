package negotiation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashureev/negotium/internal/domain"
	"github.com/ashureev/negotium/internal/llm"
)

// FallbackSummary is the summary text of the report substituted when
// analysis generation or parsing fails.
const FallbackSummary = "Analysis failed to generate."

const analystSystemPrompt = "You are a negotiation coach. Output strictly valid JSON."

// Analyzer produces the post-session analysis report through the
// analyst role on the primary model.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer wires the analyzer to the selected providers.
func NewAnalyzer(providers *llm.Providers) *Analyzer {
	return &Analyzer{client: providers.Primary}
}

// Generate asks the analyst for a structured report on the transcript.
// It never fails: any provider or parse error is replaced by a fixed
// fallback report so the analysis endpoint never surfaces a raw error.
// The second return value reports whether the fallback fired.
func (a *Analyzer) Generate(ctx context.Context, scenario string, history []domain.ChatMessage) (domain.AnalysisReport, bool) {
	report, err := a.generate(ctx, scenario, history)
	if err != nil {
		slog.Warn("analysis generation failed, substituting fallback report", "error", err)
		return FallbackReport(), true
	}
	return report, false
}

func (a *Analyzer) generate(ctx context.Context, scenario string, history []domain.ChatMessage) (domain.AnalysisReport, error) {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}

	prompt := fmt.Sprintf(`Analyze this negotiation transcript for: %q.
Transcript:
%s

Return valid JSON with:
- summary: 2 sentences on performance.
- outcome: "Success" or "Failure" (did they get a good deal?).
- strengths: List of objects { "point": "Short Title", "explanation": "Details" }.
- mistakes: List of objects { "point": "Short Title", "explanation": "Details" }.
- skill_gaps: List of strings (e.g. "Anchoring", "Active Listening").`, scenario, strings.Join(lines, "\n"))

	resp, err := a.client.GenerateJSON(ctx, []llm.Message{
		{Role: domain.RoleSystem, Content: analystSystemPrompt},
		{Role: domain.RoleUser, Content: prompt},
	})
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &report); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("parse analyst output: %w", err)
	}
	if report.Summary == "" {
		return domain.AnalysisReport{}, fmt.Errorf("analyst output missing summary")
	}

	report.Outcome = normalizeOutcome(report.Outcome)
	if report.Strengths == nil {
		report.Strengths = []domain.AnalysisPoint{}
	}
	if report.Mistakes == nil {
		report.Mistakes = []domain.AnalysisPoint{}
	}
	if report.SkillGaps == nil {
		report.SkillGaps = []string{}
	}
	return report, nil
}

// FallbackReport is the fixed report returned when analysis cannot be
// generated.
func FallbackReport() domain.AnalysisReport {
	return domain.AnalysisReport{
		Summary:   FallbackSummary,
		Outcome:   domain.OutcomeNeutral,
		Strengths: []domain.AnalysisPoint{},
		Mistakes:  []domain.AnalysisPoint{},
		SkillGaps: []string{},
	}
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models emit even under the JSON response format.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeOutcome maps whatever the model emitted onto the three
// canonical outcomes. Unknown values become Neutral.
func normalizeOutcome(outcome string) string {
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case "success":
		return domain.OutcomeSuccess
	case "failure":
		return domain.OutcomeFailure
	default:
		return domain.OutcomeNeutral
	}
}
