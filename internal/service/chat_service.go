package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/repository"
)

var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrInvalidChatID = errors.New("invalid chat id format")
)

const (
	chatTitleMaxLen   = 30
	fallbackChatTitle = "New Chat"
)

// ChatService persists conversations per owner. A save without an id creates
// a new session with a derived title; a save with an id overwrites the
// message list in place and leaves the title alone.
type ChatService struct {
	chats repository.ChatRepository
	now   func() time.Time
}

func NewChatService(chats repository.ChatRepository) *ChatService {
	return &ChatService{chats: chats, now: time.Now}
}

// DeriveChatTitle computes a session title from the first message: the first
// 30 characters of the opening user turn, ellipsized when truncated. Empty
// histories and histories not opened by the user get the fallback title.
func DeriveChatTitle(messages []domain.Message) string {
	if len(messages) == 0 || messages[0].Role != domain.RoleUser {
		return fallbackChatTitle
	}
	runes := []rune(messages[0].Text)
	if len(runes) <= chatTitleMaxLen {
		return strings.TrimSpace(messages[0].Text)
	}
	return strings.TrimSpace(string(runes[:chatTitleMaxLen])) + "..."
}

// Save stores the full message list for the owner. chatID may be empty for a
// new session. Returns the (possibly fresh) id and the stored title.
func (s *ChatService) Save(ctx context.Context, ownerEmail, chatID string, messages []domain.Message) (string, string, error) {
	now := s.now().UTC()

	if chatID != "" {
		oid, err := primitive.ObjectIDFromHex(chatID)
		if err != nil {
			return "", "", ErrInvalidChatID
		}
		updated, err := s.chats.ReplaceMessages(ctx, oid, ownerEmail, domain.ChatSession{
			Messages:  messages,
			UpdatedAt: now,
		})
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrChatNotFound
		}
		if err != nil {
			return "", "", err
		}
		return updated.ID.Hex(), updated.Title, nil
	}

	title := DeriveChatTitle(messages)
	id, err := s.chats.Insert(ctx, domain.ChatSession{
		OwnerEmail: ownerEmail,
		Title:      title,
		Messages:   messages,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return "", "", err
	}
	return id.Hex(), title, nil
}

// List returns the owner's sessions newest-first as {id, title} pairs.
func (s *ChatService) List(ctx context.Context, ownerEmail string) ([]domain.ChatSummary, error) {
	chats, err := s.chats.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, domain.ChatSummary{ID: chat.ID.Hex(), Title: chat.Title})
	}
	return summaries, nil
}

// Get returns one owned session in full. Foreign or absent ids are
// indistinguishable: both are ErrChatNotFound.
func (s *ChatService) Get(ctx context.Context, ownerEmail, chatID string) (domain.ChatSession, error) {
	oid, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return domain.ChatSession{}, ErrInvalidChatID
	}
	chat, err := s.chats.GetByID(ctx, oid, ownerEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ChatSession{}, ErrChatNotFound
	}
	if err != nil {
		return domain.ChatSession{}, err
	}
	return chat, nil
}
