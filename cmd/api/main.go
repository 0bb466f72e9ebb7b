package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"grama-vaani/internal/config"
	"grama-vaani/internal/db"
	apihttp "grama-vaani/internal/http"
	"grama-vaani/internal/llm"
	"grama-vaani/internal/repository"
	"grama-vaani/internal/schemes"
	"grama-vaani/internal/service"
	"grama-vaani/internal/speech"
	"grama-vaani/internal/weather"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	mongoClient, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	database := mongoClient.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Warn("ensure indexes failed", zap.Error(err))
	}

	userRepo := repository.NewMongoUserRepository(database)
	chatRepo := repository.NewMongoChatRepository(database)

	// External collaborators. The model and TTS clients are startup
	// requirements: without them the service cannot serve its purpose.
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	synth, err := speech.NewHTTPClient(cfg.TTSBaseURL, cfg.TTSAPIKey)
	if err != nil {
		if errors.Is(err, speech.ErrNotReady) {
			logger.Fatal("tts client not configured: set TTS_API_KEY")
		}
		logger.Fatal("tts client init", zap.Error(err))
	}
	weatherAPI := weather.NewHTTPClient(cfg.GeocodeBaseURL, cfg.ForecastBaseURL)
	schemeFinder := schemes.NewHTTPClient(cfg.SchemeAPIURL, cfg.SchemeAPIKey)

	var rateLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			rateLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
		}
		cancel()
	}

	translator := service.NewTranslator(logger, llmClient)
	weatherSvc := service.NewWeatherService(logger, weatherAPI, translator)
	advisorySvc := service.NewAdvisoryService(logger, llmClient, weatherAPI, translator)
	convStore := service.NewConversationStore(30 * time.Minute)
	assistantSvc := service.NewAssistantService(logger, llmClient, convStore, weatherSvc)
	suggestSvc := service.NewSuggestService(logger, llmClient)
	chatSvc := service.NewChatService(chatRepo)
	cropSvc := service.NewCropService(logger, llmClient)
	priceSvc := service.NewPriceService(logger, llmClient)
	schemeSvc := service.NewSchemeService(logger, llmClient, schemeFinder, translator)
	userSvc := service.NewUserService(logger, userRepo, rateLimiter)
	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, assistantSvc, suggestSvc, chatSvc, synth)
	advisoryHandler := apihttp.NewAdvisoryHandler(logger, advisorySvc, weatherSvc, cropSvc, priceSvc, schemeSvc, synth)
	router := apihttp.NewRouter(logger, jwtSvc, userSvc, userHandler, chatHandler, advisoryHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
