package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
)

// Translator routes text through the generative model for language
// conversion. English targets short-circuit to the identity, and any failure
// returns the input unchanged: translation is best-effort by contract.
type Translator struct {
	logger *zap.Logger
	client llm.Client
}

func NewTranslator(logger *zap.Logger, client llm.Client) *Translator {
	return &Translator{logger: logger, client: client}
}

var reListMarker = regexp.MustCompile(`^[*-]?\s?\d*\.?\s*`)

// Translate converts text into the target language code ("hi", "ta", ...).
func (t *Translator) Translate(ctx context.Context, text, targetLangCode string) string {
	if targetLangCode == "en" || t == nil || t.client == nil {
		return text
	}

	prompt := fmt.Sprintf(
		"Translate the following text concisely into language code '%s'. Preserve all emojis and markdown formatting but translate the prose:\n\n%s",
		targetLangCode, text,
	)
	reply, err := t.client.Generate(ctx, prompt)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("translation failed", zap.Error(err), zap.String("target", targetLangCode))
		}
		return text
	}

	clean := strings.TrimSpace(reply)
	switch {
	case strings.HasPrefix(clean, `"`) && strings.HasSuffix(clean, `"`) && len(clean) >= 2:
		clean = clean[1 : len(clean)-1]
	case strings.HasPrefix(clean, "1.") || strings.HasPrefix(clean, "*"):
		// Models sometimes wrap the translation in a single list item.
		clean = strings.TrimSpace(reListMarker.ReplaceAllString(clean, ""))
	}
	return clean
}

// LangCode extracts the bare language code from a BCP-47 style tag
// ("ta-IN" -> "ta").
func LangCode(language string) string {
	if i := strings.Index(language, "-"); i >= 0 {
		return language[:i]
	}
	return language
}
