package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"grama-vaani/internal/weather"
)

// weatherCodeRange maps an inclusive WMO code range to an emoji and a short
// description for report rendering.
type weatherCodeRange struct {
	lo, hi int
	emoji  string
	desc   string
}

var weatherCodeTable = []weatherCodeRange{
	{0, 0, "☀️", "Clear sky"},
	{1, 3, "🌥️", "Mainly clear/Partly cloudy"},
	{45, 48, "🌫️", "Fog"},
	{51, 55, "🌦️", "Drizzle"},
	{56, 57, "🌨️", "Freezing Drizzle"},
	{61, 65, "🌧️", "Rain"},
	{66, 67, "🌨️", "Freezing Rain"},
	{71, 75, "❄️", "Snow fall"},
	{77, 77, "❄️", "Snow grains"},
	{80, 82, "🌦️", "Rain showers"},
	{85, 86, "🌨️", "Snow showers"},
	{95, 99, "⛈️", "Thunderstorm"},
}

// DescribeWeatherCode resolves a WMO weather code to an emoji and description.
func DescribeWeatherCode(code int) (string, string) {
	for _, r := range weatherCodeTable {
		if code >= r.lo && code <= r.hi {
			return r.emoji, r.desc
		}
	}
	return "🌡️", "Unknown"
}

const weatherUnavailableMsg = "Sorry, the external weather service could not be reached or the location was not specific enough."

// WeatherService renders a 7-day markdown forecast report for a city. It is
// consumed both by the direct weather endpoint and by chat turns the model
// classified as weather requests.
type WeatherService struct {
	logger     *zap.Logger
	api        weather.API
	translator *Translator
}

func NewWeatherService(logger *zap.Logger, api weather.API, translator *Translator) *WeatherService {
	return &WeatherService{logger: logger, api: api, translator: translator}
}

// GetWeather never fails: geocode misses and upstream errors degrade into
// fixed report strings.
func (s *WeatherService) GetWeather(ctx context.Context, city, language string) string {
	place, err := s.api.Geocode(ctx, city)
	if err != nil {
		if err == weather.ErrLocationNotFound {
			return fmt.Sprintf("Could not find location: %s", city)
		}
		s.logger.Warn("geocode failed", zap.Error(err), zap.String("city", city))
		return weatherUnavailableMsg
	}

	fc, err := s.api.Forecast(ctx, place, 7)
	if err != nil {
		s.logger.Warn("forecast failed", zap.Error(err), zap.String("city", city))
		return weatherUnavailableMsg
	}

	report := renderForecastReport(place.Name, fc)

	if code := LangCode(language); code != "en" {
		report = s.translator.Translate(ctx, report, code)
	}
	return report
}

func renderForecastReport(cityName string, fc weather.Forecast) string {
	var b strings.Builder

	emoji, desc := DescribeWeatherCode(fc.Current.WeatherCode)
	fmt.Fprintf(&b, "## 7-Day Weather Forecast for %s\n\n", cityName)
	fmt.Fprintf(&b, "**Current:** %s %g°C | %s | Wind: %g km/h\n\n", emoji, fc.Current.Temperature, desc, fc.Current.WindSpeed)

	b.WriteString("| Day | Weather | High (°C) | Low (°C) | Rain (mm) |\n")
	b.WriteString("|:---:|:---:|:---:|:---:|:---:|\n")

	daily := fc.Daily
	for i := 0; i < len(daily.Time); i++ {
		e, d := DescribeWeatherCode(at(daily.WeatherCode, i))
		fmt.Fprintf(&b, "| %s | %s %s | %g | %g | %g |\n",
			dayName(daily.Time[i], i),
			e, d,
			atF(daily.TemperatureMax, i),
			atF(daily.TemperatureMin, i),
			atF(daily.PrecipitationSum, i),
		)
	}

	b.WriteString("\n*Data from Open-Meteo.*")
	return b.String()
}

func dayName(isoDate string, index int) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Weekday().String()
}

// The daily arrays arrive as parallel slices; guard against a short one.
func at(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return -1
}

func atF(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
