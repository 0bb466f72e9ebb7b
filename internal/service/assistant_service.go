package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
)

const weatherSentinel = "WEATHER_REQUEST:"

const assistantApology = "Sorry, I encountered an error while processing your question."

// replyIntent is the classified shape of a model reply: either a direct
// answer to show the user, or a structured weather request to re-dispatch.
type replyIntent struct {
	weather bool
	city    string
	answer  string
}

// classifyReply isolates the sentinel protocol in one place. The model is
// instructed to answer a weather question with "WEATHER_REQUEST: <city>"
// instead of prose; everything else is a direct answer.
func classifyReply(reply string) replyIntent {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, weatherSentinel) {
		return replyIntent{answer: trimmed}
	}
	city := strings.TrimSpace(trimmed[len(weatherSentinel):])
	return replyIntent{weather: true, city: city}
}

// AssistantService answers free-text farming questions over a per-user
// conversational context, redirecting weather intents into the forecast
// pipeline.
type AssistantService struct {
	logger  *zap.Logger
	client  llm.Client
	store   *ConversationStore
	weather *WeatherService
}

func NewAssistantService(logger *zap.Logger, client llm.Client, store *ConversationStore, weather *WeatherService) *AssistantService {
	return &AssistantService{logger: logger, client: client, store: store, weather: weather}
}

// Ask sends one user turn through the user's accumulated context and returns
// the reply text. A weather-classified reply is re-dispatched through the
// weather report exactly once; there is no loop. Model failures return a
// fixed apology, never an error.
func (s *AssistantService) Ask(ctx context.Context, userKey, question, language string) string {
	langCode := LangCode(language)
	prompt := fmt.Sprintf(`You are Grama Vaani, an AI farming assistant.
Answer in **%s** if possible.
Question: "%s"
Be concise and helpful. Use **Markdown** for formatting (like **bold** or bullet points).
If user asks for weather, reply: WEATHER_REQUEST: [city]`, langCode, question)

	history := s.store.History(userKey)
	reply, err := s.client.GenerateWithHistory(ctx, history, prompt)
	if err != nil {
		s.logger.Warn("assistant generation failed", zap.Error(err))
		return assistantApology
	}

	intent := classifyReply(reply)
	answer := intent.answer
	if intent.weather {
		answer = s.weather.GetWeather(ctx, intent.city, language)
	}

	s.store.Append(userKey,
		llm.Turn{Role: "user", Content: question},
		llm.Turn{Role: "assistant", Content: answer},
	)
	return answer
}
