package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/llm"
	"grama-vaani/internal/weather"
)

// AdvisoryService builds the proactive daily farming advisory. Every external
// failure degrades into usable text; the caller always receives something to
// show and speak.
type AdvisoryService struct {
	logger     *zap.Logger
	client     llm.Client
	api        weather.API
	translator *Translator
}

func NewAdvisoryService(logger *zap.Logger, client llm.Client, api weather.API, translator *Translator) *AdvisoryService {
	return &AdvisoryService{logger: logger, client: client, api: api, translator: translator}
}

// BuildDailyAdvisory composes a weather-aware recommendation for the farmer's
// registered crop and location. Profiles still on placeholder values skip the
// geocode and forecast calls entirely: defaults carry no localizable signal
// and the external calls would be wasted.
func (s *AdvisoryService) BuildDailyAdvisory(ctx context.Context, user domain.User, language string) string {
	langCode := LangCode(language)

	if user.HasDefaultProfile() {
		name := user.Name
		if name == "" {
			name = "Farmer"
		}
		text := fmt.Sprintf(
			"Hello, %s! Your profile currently uses default settings (Location: **%s**, Crop: **%s**). Please update your profile for truly localized advice! Today's general advice: Check your irrigation systems and plan your next week's fertilizer application.",
			name, user.Location, user.PreferredCrop,
		)
		return s.translator.Translate(ctx, text, langCode)
	}

	weatherInfo := s.weatherSummary(ctx, user.Location)

	prompt := fmt.Sprintf(`You are Grama Vaani, a proactive Daily Farming Advisor.
Your task is to provide a single, concise daily advisory message to the farmer based on their registered information and current weather.

The farmer's language preference is **%s**. Respond *entirely* in this language.

**Farmer's Context:**
- Primary Crop: **%s**
- Location: **%s**
- Current Weather Summary: **%s**

**The Advisory must:**
1. Start with a friendly greeting and acknowledge the location/crop.
2. Provide 1-2 critical, action-oriented recommendations for the **%s** based on the weather (e.g., if rain is high, advise on drainage or pest watch; if hot, advise on irrigation timing).
3. End with a positive closing remark.
4. Use concise **Markdown (bolding and bullet points)** for clarity.
5. The entire response should be brief, a maximum of 4-5 sentences/points.`,
		langCode, user.PreferredCrop, user.Location, weatherInfo, user.PreferredCrop,
	)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisory generation failed", zap.Error(err), zap.String("location", user.Location))
		generic := fmt.Sprintf(
			"Hello! Remember to check your %s fields for any early signs of pests or disease. A morning walk through your farm can prevent big problems! Have a productive day.",
			user.PreferredCrop,
		)
		return s.translator.Translate(ctx, generic, langCode)
	}
	return text
}

// weatherSummary produces the one-line weather context for the prompt, or a
// degraded placeholder when the lookup fails.
func (s *AdvisoryService) weatherSummary(ctx context.Context, location string) string {
	place, err := s.api.Geocode(ctx, location)
	if err != nil {
		if err == weather.ErrLocationNotFound {
			return fmt.Sprintf("Weather: Location '%s' not found.", location)
		}
		s.logger.Warn("advisory geocode failed", zap.Error(err), zap.String("location", location))
		return fmt.Sprintf("Weather: Could not fetch forecast for %s. Advisories will be general.", location)
	}

	fc, err := s.api.Forecast(ctx, place, 1)
	if err != nil || len(fc.Daily.TemperatureMax) == 0 || len(fc.Daily.PrecipitationSum) == 0 {
		s.logger.Warn("advisory forecast failed", zap.Error(err), zap.String("location", location))
		return fmt.Sprintf("Weather: Could not fetch forecast for %s. Advisories will be general.", location)
	}

	emoji, desc := DescribeWeatherCode(fc.Current.WeatherCode)
	return fmt.Sprintf("Location: %s, Today: %s %s, Temp: %g°C, Rain: %gmm, Wind: %g km/h.",
		place.Name, emoji, desc, fc.Daily.TemperatureMax[0], fc.Daily.PrecipitationSum[0], fc.Current.WindSpeed,
	)
}
