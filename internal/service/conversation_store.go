package service

import (
	"sync"
	"time"

	"grama-vaani/internal/llm"
)

const (
	defaultConversationTTL = 30 * time.Minute
	maxConversationTurns   = 20
)

type conversation struct {
	turns    []llm.Turn
	lastSeen time.Time
}

// ConversationStore keeps one in-memory conversational context per user so
// concurrent users never observe each other's history. Idle contexts are
// evicted lazily on access.
type ConversationStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	convs map[string]*conversation
}

func NewConversationStore(ttl time.Duration) *ConversationStore {
	if ttl <= 0 {
		ttl = defaultConversationTTL
	}
	return &ConversationStore{
		ttl:   ttl,
		now:   time.Now,
		convs: make(map[string]*conversation),
	}
}

// History returns a copy of the user's accumulated turns, dropping the
// context first if it has been idle past the TTL.
func (s *ConversationStore) History(userKey string) []llm.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictStale()
	conv, ok := s.convs[userKey]
	if !ok {
		return nil
	}
	conv.lastSeen = s.now()
	copied := make([]llm.Turn, len(conv.turns))
	copy(copied, conv.turns)
	return copied
}

// Append records one user/assistant exchange, trimming the oldest turns once
// the window is full.
func (s *ConversationStore) Append(userKey string, userTurn, assistantTurn llm.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convs[userKey]
	if !ok {
		conv = &conversation{}
		s.convs[userKey] = conv
	}
	conv.turns = append(conv.turns, userTurn, assistantTurn)
	if len(conv.turns) > maxConversationTurns {
		conv.turns = conv.turns[len(conv.turns)-maxConversationTurns:]
	}
	conv.lastSeen = s.now()
}

func (s *ConversationStore) evictStale() {
	cutoff := s.now().Add(-s.ttl)
	for key, conv := range s.convs {
		if conv.lastSeen.Before(cutoff) {
			delete(s.convs, key)
		}
	}
}
