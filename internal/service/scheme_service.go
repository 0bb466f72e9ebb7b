package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
	"grama-vaani/internal/schemes"
)

const schemeFailureMsg = "Sorry, the scheme advisor service failed."

const noSchemesMsg = "No specific government schemes were found for your query. Please try being more descriptive (e.g., 'subsidy for drip irrigation')."

// SchemeService looks up government schemes by keyword and formats them into
// a report. Registry failures are treated as an empty result.
type SchemeService struct {
	logger     *zap.Logger
	client     llm.Client
	finder     schemes.Finder
	translator *Translator
}

func NewSchemeService(logger *zap.Logger, client llm.Client, finder schemes.Finder, translator *Translator) *SchemeService {
	return &SchemeService{logger: logger, client: client, finder: finder, translator: translator}
}

func (s *SchemeService) Advise(ctx context.Context, query, language string) string {
	langCode := LangCode(language)

	found, err := s.finder.Search(ctx, query)
	if err != nil {
		s.logger.Warn("scheme search failed", zap.Error(err))
		found = nil
	}
	if len(found) == 0 {
		return s.translator.Translate(ctx, noSchemesMsg, langCode)
	}

	var lines []string
	for _, scheme := range found {
		lines = append(lines, fmt.Sprintf("- Scheme: %s, Summary: %s, Link: %s", scheme.Title, scheme.Summary, scheme.Link))
	}

	prompt := fmt.Sprintf(`You are a government scheme advisor for Grama Vaani.
Your task is to provide a helpful report for a farmer based on their query: "%s".

Respond in language: **%s**.

I found the following matching schemes:
%s

Please present these schemes in a professional report. The report must include:
1. An introductory sentence.
2. A **Markdown Table** with the columns: "Scheme Name", "Brief Summary", and "Link for Details".
3. A concluding remark encouraging the user to visit the links.`,
		query, langCode, strings.Join(lines, "\n"),
	)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("scheme report failed", zap.Error(err))
		return schemeFailureMsg
	}
	return strings.TrimSpace(text)
}
