package negotiation

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/ashureev/negotium/internal/domain"
	"github.com/ashureev/negotium/internal/llm"
)

// MoodNeutral is the opponent mood reported on every turn. Mood
// modelling beyond this constant lives client-side.
const MoodNeutral = "neutral"

// TurnResult is the outcome of one negotiation turn. The opponent reply
// is returned to the caller but never appended to the stored history;
// clients accumulate the transcript themselves.
type TurnResult struct {
	OpponentReply string
	CoachTip      string
	NewLeverage   float64
	Mood          string
}

// Coordinator sequences the opponent and coach model calls for each
// conversational turn. It holds no state and performs no persistence;
// the API layer persists exactly what ProcessTurn returns.
type Coordinator struct {
	primary llm.Client
	fast    llm.Client
}

// NewCoordinator wires the coordinator to the selected providers:
// the opponent speaks through the primary model, the coach through the
// fast one.
func NewCoordinator(providers *llm.Providers) *Coordinator {
	return &Coordinator{primary: providers.Primary, fast: providers.Fast}
}

// ProcessTurn runs one turn: the opponent replies to the full history,
// the coach comments on the last message, and the leverage heuristic
// moves the negotiation state. A failure of either model call fails the
// whole turn; the coach is not optional.
func (c *Coordinator) ProcessTurn(ctx context.Context, scenario string, history []domain.ChatMessage, currentLeverage float64) (TurnResult, error) {
	if scenario == "" {
		return TurnResult{}, fmt.Errorf("scenario must not be empty: %w", errdefs.ErrInvalidArgument)
	}
	if len(history) == 0 {
		return TurnResult{}, fmt.Errorf("history must not be empty: %w", errdefs.ErrInvalidArgument)
	}
	if !InRange(currentLeverage) {
		return TurnResult{}, fmt.Errorf("leverage %.2f outside [%.1f, %.1f]: %w", currentLeverage, LeverageMin, LeverageMax, errdefs.ErrInvalidArgument)
	}

	reply, err := c.opponentReply(ctx, scenario, history)
	if err != nil {
		return TurnResult{}, fmt.Errorf("opponent: %w", err)
	}

	tip, err := c.coachTip(ctx, history[len(history)-1].Content)
	if err != nil {
		return TurnResult{}, fmt.Errorf("coach: %w", err)
	}

	return TurnResult{
		OpponentReply: reply,
		CoachTip:      tip,
		NewLeverage:   Score(currentLeverage, reply),
		Mood:          MoodNeutral,
	}, nil
}

// opponentReply submits the scenario-parameterized system instruction
// followed by the full history verbatim.
func (c *Coordinator) opponentReply(ctx context.Context, scenario string, history []domain.ChatMessage) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    domain.RoleSystem,
		Content: fmt.Sprintf("You are a tough negotiator in a %s. Be realistic, concise (max 3 sentences), and react to user tone.", scenario),
	})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := c.primary.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// coachTip sees only the last message of the transcript, not the full
// history.
func (c *Coordinator) coachTip(ctx context.Context, lastMsg string) (string, error) {
	resp, err := c.fast.Generate(ctx, []llm.Message{{
		Role:    domain.RoleUser,
		Content: fmt.Sprintf("Analyze: '%s'. Give 1 short tactical tip (max 15 words).", lastMsg),
	}})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
