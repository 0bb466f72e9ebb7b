package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/llm"
)

func suggestHistory() []domain.Message {
	return []domain.Message{
		{Role: domain.RoleUser, Text: "my paddy leaves are yellow"},
		{Role: domain.RoleAI, Text: "That can indicate nitrogen deficiency."},
	}
}

func TestSuggest_EmptyHistoryReturnsEmptyList(t *testing.T) {
	mock := &llm.MockClient{Response: "a, b, c"}
	svc := NewSuggestService(zap.NewNop(), mock)

	got := svc.Suggest(context.Background(), nil, "en-US")
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if len(mock.Prompts) != 0 {
		t.Fatalf("expected no model call for empty history, got %d", len(mock.Prompts))
	}
}

func TestSuggest_AlwaysExactlyThree(t *testing.T) {
	cases := map[string][]string{
		"":              {defaultSuggestions[0], defaultSuggestions[1], defaultSuggestions[2]},
		"only one":      {"only one", defaultSuggestions[1], defaultSuggestions[2]},
		"one, two":      {"one", "two", defaultSuggestions[2]},
		"a, b, c, d, e": {"a", "b", "c"},
	}
	for reply, want := range cases {
		mock := &llm.MockClient{Response: reply}
		svc := NewSuggestService(zap.NewNop(), mock)

		got := svc.Suggest(context.Background(), suggestHistory(), "en-US")
		if len(got) != 3 {
			t.Fatalf("reply %q: expected 3 questions, got %d", reply, len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("reply %q: expected %v, got %v", reply, want, got)
			}
		}
		for _, q := range got {
			if strings.TrimSpace(q) == "" {
				t.Fatalf("reply %q: empty question in %v", reply, got)
			}
		}
	}
}

func TestSuggest_StripsMarkdownAndNewlines(t *testing.T) {
	mock := &llm.MockClient{Response: "*How much water*,\nWhat fertilizer,\nWhen to harvest"}
	svc := NewSuggestService(zap.NewNop(), mock)

	got := svc.Suggest(context.Background(), suggestHistory(), "en-US")
	if got[0] != "How much water" {
		t.Fatalf("expected asterisks stripped, got %v", got)
	}
}

func TestSuggest_ModelFailureReturnsDefaults(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("model down")}
	svc := NewSuggestService(zap.NewNop(), mock)

	got := svc.Suggest(context.Background(), suggestHistory(), "en-US")
	if len(got) != 3 {
		t.Fatalf("expected 3 defaults, got %v", got)
	}
	for i, q := range defaultSuggestions {
		if got[i] != q {
			t.Fatalf("expected default list, got %v", got)
		}
	}
}

func TestSuggest_PromptContainsHistoryRoles(t *testing.T) {
	mock := &llm.MockClient{Response: "a, b, c"}
	svc := NewSuggestService(zap.NewNop(), mock)

	svc.Suggest(context.Background(), suggestHistory(), "hi-IN")
	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, "USER: my paddy leaves are yellow") {
		t.Fatalf("expected upper-cased role lines in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "**hi**") {
		t.Fatalf("expected bare language code in prompt:\n%s", prompt)
	}
}
