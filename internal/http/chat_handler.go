package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/service"
	"grama-vaani/internal/speech"
)

const maxSuggestionHistory = 5

// ChatHandler holds dependencies for the conversational endpoints.
type ChatHandler struct {
	logger      *zap.Logger
	assistant   *service.AssistantService
	suggestServ *service.SuggestService
	chatServ    *service.ChatService
	synth       speech.Synthesizer
}

func NewChatHandler(
	logger *zap.Logger,
	assistant *service.AssistantService,
	suggestServ *service.SuggestService,
	chatServ *service.ChatService,
	synth speech.Synthesizer,
) *ChatHandler {
	return &ChatHandler{
		logger:      logger,
		assistant:   assistant,
		suggestServ: suggestServ,
		chatServ:    chatServ,
		synth:       synth,
	}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Text     string `json:"text" binding:"required"`
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text := h.assistant.Ask(c.Request.Context(), user.Email, req.Text, req.Language)
	c.JSON(http.StatusOK, spoken(c.Request.Context(), h.logger, h.synth, text, req.Language))
}

// SuggestQuestions handles POST /suggest_questions.
func (h *ChatHandler) SuggestQuestions(c *gin.Context) {
	var req struct {
		History  []domain.Message `json:"history"`
		Language string           `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid suggest request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	history := req.History
	if len(history) > maxSuggestionHistory {
		history = history[len(history)-maxSuggestionHistory:]
	}

	questions := h.suggestServ.Suggest(c.Request.Context(), history, req.Language)
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// ListChats handles GET /chats.
func (h *ChatHandler) ListChats(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	summaries, err := h.chatServ.List(c.Request.Context(), user.Email)
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list chats"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetChat handles GET /chats/:id.
func (h *ChatHandler) GetChat(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	chat, err := h.chatServ.Get(c.Request.Context(), user.Email, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChatID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID format"})
		case errors.Is(err, service.ErrChatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found or access denied"})
		default:
			h.logger.Error("get chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load chat"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       chat.ID.Hex(),
		"title":    chat.Title,
		"messages": chat.Messages,
	})
}

// SaveChat handles POST /save_chat.
func (h *ChatHandler) SaveChat(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		ChatID   string           `json:"chat_id"`
		Messages []domain.Message `json:"messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, title, err := h.chatServ.Save(c.Request.Context(), user.Email, req.ChatID, req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChatID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID format"})
		case errors.Is(err, service.ErrChatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found or access denied"})
		default:
			h.logger.Error("save chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save chat"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat_id": id, "title": title})
}
