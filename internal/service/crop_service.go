package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
)

// ErrCropAnalysisFailed means the vision-capable model call failed outright.
// Unlike the other pipelines there is no fallback diagnosis text to degrade
// to, so the handler surfaces this as a server error.
var ErrCropAnalysisFailed = errors.New("crop analysis failed")

// CropService diagnoses crop problems from an uploaded photo via the
// multimodal model.
type CropService struct {
	logger *zap.Logger
	client llm.Client
}

func NewCropService(logger *zap.Logger, client llm.Client) *CropService {
	return &CropService{logger: logger, client: client}
}

func (s *CropService) Analyze(ctx context.Context, image []byte, mimeType, language string) (string, error) {
	if len(image) == 0 {
		return "", ErrCropAnalysisFailed
	}

	prompt := fmt.Sprintf(`You are a crop pathologist.

**Your task:** Based on the attached image:
1. First verify the image shows a plant, leaf, crop, soil, vegetable, fruit or field. If it does not, reply exactly: "Not a clear crop image. Please upload a clear picture of the plant, leaf, or soil."
2. Diagnose any visible pest, disease, or nutrient deficiency.
3. Provide a clear, brief remedy plan using **bullet points**.
4. Start with a salutation.

Respond entirely in **%s**. Use Markdown for formatting.`, LangCode(language))

	text, err := s.client.GenerateWithImage(ctx, prompt, image, mimeType)
	if err != nil {
		s.logger.Warn("crop image analysis failed", zap.Error(err))
		return "", ErrCropAnalysisFailed
	}
	return strings.TrimSpace(text), nil
}
