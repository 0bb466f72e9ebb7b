package http

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/service"
	"grama-vaani/internal/speech"
)

// spoken assembles the {text, audio} response body: the display text is
// sanitized and synthesized, and a synthesis failure downgrades to
// audio: null rather than failing the request.
func spoken(ctx context.Context, logger *zap.Logger, synth speech.Synthesizer, text, language string) domain.AdvisoryResult {
	result := domain.AdvisoryResult{Text: text}
	if synth == nil {
		return result
	}

	audio, err := synth.Synthesize(ctx, service.CleanForSpeech(text), language)
	if err != nil {
		if !errors.Is(err, speech.ErrNotReady) {
			logger.Warn("speech synthesis failed", zap.Error(err))
		}
		return result
	}
	result.Audio = &audio
	return result
}
