package config

import "github.com/caarlos0/env/v10"

// Config centralizes service configuration.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	MongoURL    string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"grama_vaani_db"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	JWTTTLHours int    `env:"JWT_TTL_HOURS" envDefault:"24"`

	LLMAPIKey  string `env:"LLM_API_KEY,required"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gemini-2.0-flash"`

	TTSAPIKey  string `env:"TTS_API_KEY"`
	TTSBaseURL string `env:"TTS_BASE_URL" envDefault:"https://texttospeech.googleapis.com/v1"`

	GeocodeBaseURL  string `env:"GEOCODE_BASE_URL" envDefault:"https://geocode.maps.co"`
	ForecastBaseURL string `env:"FORECAST_BASE_URL" envDefault:"https://api.open-meteo.com"`

	SchemeAPIKey string `env:"SCHEME_API_KEY"`
	SchemeAPIURL string `env:"SCHEME_API_URL" envDefault:"https://api.data.gov.in/resource/6176ee09-3d56-4a3b-8115-2184157c1f41"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
