package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"grama-vaani/internal/service"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configures the Gin router with middlewares and routes.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userSvc *service.UserService,
	userH *UserHandler,
	chatH *ChatHandler,
	advisoryH *AdvisoryHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	// Public routes: account creation and login.
	r.POST("/signup", userH.Signup)
	r.POST("/login", userH.Login)

	// Everything else requires the session cookie.
	authed := r.Group("/")
	authed.Use(AuthMiddleware(jwtSvc, userSvc))

	authed.POST("/logout", userH.Logout)
	authed.PUT("/profile/update", userH.UpdateProfile)

	authed.GET("/advisory", advisoryH.Advisory)
	authed.GET("/weather/:city", advisoryH.Weather)
	authed.POST("/analyse-crop", advisoryH.AnalyseCrop)
	authed.POST("/price", advisoryH.Price)
	authed.POST("/scheme", advisoryH.Scheme)

	authed.POST("/chat", chatH.Chat)
	authed.POST("/suggest_questions", chatH.SuggestQuestions)
	authed.GET("/chats", chatH.ListChats)
	authed.GET("/chats/:id", chatH.GetChat)
	authed.POST("/save_chat", chatH.SaveChat)

	return r
}

// requestIDMiddleware tags every request with an id, honoring one supplied by
// the caller, and echoes it back in the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware creates a simple zap request-logging middleware.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}
