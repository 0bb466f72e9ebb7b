package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/llm"
)

const suggestedQuestionCount = 3

var defaultSuggestions = []string{
	"What is the current market price?",
	"How to prevent pest attacks?",
	"Where can I find government subsidies?",
}

const fillerSuggestion = "Tell me more about farming."

// SuggestService turns the trailing conversation window into exactly three
// follow-up questions. The model is asked for a strict comma-separated list;
// whatever shape comes back is normalized to three non-empty items.
type SuggestService struct {
	logger *zap.Logger
	client llm.Client
}

func NewSuggestService(logger *zap.Logger, client llm.Client) *SuggestService {
	return &SuggestService{logger: logger, client: client}
}

// Suggest returns an empty list for empty history (the UI hides the element)
// and otherwise exactly three questions, falling back to the default list on
// model failure.
func (s *SuggestService) Suggest(ctx context.Context, history []domain.Message, language string) []string {
	if len(history) == 0 {
		return []string{}
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(msg.Role), msg.Text))
	}

	prompt := fmt.Sprintf(`Based on the following conversation history, suggest **3 concise, single-sentence follow-up agricultural questions** that a farmer might want to ask next.

The response **must** be a comma-separated list of exactly 3 questions.
Example output (for English): "How much water is needed, What is the best fertilizer, When should I harvest"

Conversation context (last message is the most important):
---
%s
---

Generate the 3 questions in **%s**. Return only the comma-separated list.`,
		strings.Join(lines, "\n"), LangCode(language),
	)

	reply, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("suggestion generation failed", zap.Error(err))
		out := make([]string, suggestedQuestionCount)
		copy(out, defaultSuggestions)
		return out
	}

	return padSuggestions(parseSuggestions(reply))
}

func parseSuggestions(reply string) []string {
	cleaned := strings.NewReplacer("*", "", "\n", "").Replace(strings.TrimSpace(reply))
	parts := strings.Split(cleaned, ",")
	questions := make([]string, 0, len(parts))
	for _, p := range parts {
		if q := strings.TrimSpace(p); q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// padSuggestions guarantees exactly three items: defaults fill the gaps in
// order, then the generic filler, and any excess is truncated.
func padSuggestions(questions []string) []string {
	for len(questions) < suggestedQuestionCount {
		if len(questions) < len(defaultSuggestions) {
			questions = append(questions, defaultSuggestions[len(questions)])
		} else {
			questions = append(questions, fillerSuggestion)
		}
	}
	return questions[:suggestedQuestionCount]
}
