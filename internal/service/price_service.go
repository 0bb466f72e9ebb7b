package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
)

const priceFailureMsg = "Sorry, the price forecast service failed."

const noPriceDataMsg = "No price data found for that crop. Please specify a crop like 'tomato' or 'onion'."

// PriceService produces a market price report for a crop query. Price data is
// a fictional demo table; the model only formats it.
type PriceService struct {
	logger *zap.Logger
	client llm.Client
}

func NewPriceService(logger *zap.Logger, client llm.Client) *PriceService {
	return &PriceService{logger: logger, client: client}
}

// LookupPriceData resolves the demo price rows for a query, matching English
// and Hindi crop names.
func LookupPriceData(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "tomato") || strings.Contains(q, "tamatar"):
		return "Tomato (Nati): Avg: 50, Max: 65, Min: 40 | Tomato (Hybrid): Avg: 40, Max: 50, Min: 30"
	case strings.Contains(q, "onion") || strings.Contains(q, "pyaj"):
		return "Onion (Big): Avg: 80, Max: 100, Min: 70 | Onion (Small): Avg: 60, Max: 70, Min: 50"
	default:
		return noPriceDataMsg
	}
}

// Report renders the price data as a markdown report in the target language.
// Model failures return a fixed failure string.
func (s *PriceService) Report(ctx context.Context, query, language string) string {
	priceData := LookupPriceData(query)

	prompt := fmt.Sprintf(`You are a professional market analyst for Grama Vaani.
Your task is to provide a price report for a farmer.

Respond in language: **%s**.

Here is the raw data I found for the query "%s":
"%s"

If the data says 'No price data found', just apologize and ask them to be more specific.

Otherwise, present this data in a professional report. The report must include:
1. A brief introductory sentence.
2. A **Markdown Table** with the columns: "Crop Variety", "Average Price (₹)", "Max Price (₹)", and "Min Price (₹)".
3. A one-sentence concluding remark or disclaimer (e.g., "Prices are fictional and for demonstration only.").`,
		LangCode(language), query, priceData,
	)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("price report failed", zap.Error(err))
		return priceFailureMsg
	}
	return strings.TrimSpace(text)
}
