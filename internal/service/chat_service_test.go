package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/repository"
)

type mockChatRepo struct {
	chats map[primitive.ObjectID]domain.ChatSession
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{chats: make(map[primitive.ObjectID]domain.ChatSession)}
}

func (m *mockChatRepo) Insert(_ context.Context, chat domain.ChatSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	chat.ID = id
	m.chats[id] = chat
	return id, nil
}

func (m *mockChatRepo) ReplaceMessages(_ context.Context, id primitive.ObjectID, ownerEmail string, chat domain.ChatSession) (domain.ChatSession, error) {
	existing, ok := m.chats[id]
	if !ok || existing.OwnerEmail != ownerEmail {
		return domain.ChatSession{}, repository.ErrNotFound
	}
	existing.Messages = chat.Messages
	existing.UpdatedAt = chat.UpdatedAt
	m.chats[id] = existing
	return existing, nil
}

func (m *mockChatRepo) ListByOwner(_ context.Context, ownerEmail string) ([]domain.ChatSession, error) {
	var out []domain.ChatSession
	for _, chat := range m.chats {
		if chat.OwnerEmail == ownerEmail {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (m *mockChatRepo) GetByID(_ context.Context, id primitive.ObjectID, ownerEmail string) (domain.ChatSession, error) {
	chat, ok := m.chats[id]
	if !ok || chat.OwnerEmail != ownerEmail {
		return domain.ChatSession{}, repository.ErrNotFound
	}
	return chat, nil
}

func TestDeriveChatTitle(t *testing.T) {
	long := strings.Repeat("a", 35)
	cases := []struct {
		name     string
		messages []domain.Message
		want     string
	}{
		{"empty", nil, "New Chat"},
		{"ai first", []domain.Message{{Role: domain.RoleAI, Text: "hello"}}, "New Chat"},
		{"short", []domain.Message{{Role: domain.RoleUser, Text: "short text"}}, "short text"},
		{"long", []domain.Message{{Role: domain.RoleUser, Text: long}}, long[:30] + "..."},
	}
	for _, tc := range cases {
		if got := DeriveChatTitle(tc.messages); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestChatService_SaveGetRoundTrip(t *testing.T) {
	svc := NewChatService(newMockChatRepo())
	messages := []domain.Message{
		{Role: domain.RoleUser, Text: "how to treat leaf blight?"},
		{Role: domain.RoleAI, Text: "Use a copper-based fungicide."},
		{Role: domain.RoleUser, Text: "how often?"},
	}

	id, title, err := svc.Save(context.Background(), "a@x.com", "", messages)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if title != "how to treat leaf blight?" {
		t.Fatalf("unexpected title: %q", title)
	}

	chat, err := svc.Get(context.Background(), "a@x.com", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(chat.Messages) != len(messages) {
		t.Fatalf("expected %d messages, got %d", len(messages), len(chat.Messages))
	}
	for i := range messages {
		if chat.Messages[i] != messages[i] {
			t.Fatalf("message %d reordered or altered: %+v", i, chat.Messages[i])
		}
	}
}

func TestChatService_UpdateKeepsTitle(t *testing.T) {
	svc := NewChatService(newMockChatRepo())
	first := []domain.Message{{Role: domain.RoleUser, Text: "original question"}}

	id, title, err := svc.Save(context.Background(), "a@x.com", "", first)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	grown := append(first, domain.Message{Role: domain.RoleAI, Text: "an answer"})
	id2, title2, err := svc.Save(context.Background(), "a@x.com", id, grown)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if id2 != id {
		t.Fatalf("expected same id, got %q vs %q", id2, id)
	}
	if title2 != title {
		t.Fatalf("title must be immutable: %q vs %q", title2, title)
	}

	chat, err := svc.Get(context.Background(), "a@x.com", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(chat.Messages) != 2 {
		t.Fatalf("expected overwritten message list, got %d", len(chat.Messages))
	}
}

func TestChatService_CrossOwnerIsNotFound(t *testing.T) {
	svc := NewChatService(newMockChatRepo())
	id, _, err := svc.Save(context.Background(), "b@x.com", "", []domain.Message{{Role: domain.RoleUser, Text: "private"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Get(context.Background(), "a@x.com", id); err != ErrChatNotFound {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if _, _, err := svc.Save(context.Background(), "a@x.com", id, nil); err != ErrChatNotFound {
		t.Fatalf("expected ErrChatNotFound on foreign update, got %v", err)
	}
}

func TestChatService_MalformedID(t *testing.T) {
	svc := NewChatService(newMockChatRepo())

	if _, err := svc.Get(context.Background(), "a@x.com", "not-a-hex-id"); err != ErrInvalidChatID {
		t.Fatalf("expected ErrInvalidChatID, got %v", err)
	}
	if _, _, err := svc.Save(context.Background(), "a@x.com", "zzz", nil); err != ErrInvalidChatID {
		t.Fatalf("expected ErrInvalidChatID, got %v", err)
	}
}

func TestChatService_SetsTimestamps(t *testing.T) {
	repo := newMockChatRepo()
	svc := NewChatService(repo)
	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, _, err := svc.Save(context.Background(), "a@x.com", "", []domain.Message{{Role: domain.RoleUser, Text: "q"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	chat, err := svc.Get(context.Background(), "a@x.com", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !chat.CreatedAt.Equal(fixed) || !chat.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected timestamps %v, got created=%v updated=%v", fixed, chat.CreatedAt, chat.UpdatedAt)
	}
}
