package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
)

func TestLookupPriceData(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"tomato price today", "Tomato (Nati)"},
		{"TAMATAR ka bhav", "Tomato (Nati)"},
		{"price of onion", "Onion (Big)"},
		{"pyaj", "Onion (Big)"},
		{"wheat", noPriceDataMsg},
	}
	for _, tc := range cases {
		got := LookupPriceData(tc.query)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%q: expected %q in %q", tc.query, tc.want, got)
		}
	}
}

func TestPriceService_ReportPromptCarriesData(t *testing.T) {
	mock := &llm.MockClient{Response: "| Crop Variety | ... |"}
	svc := NewPriceService(zap.NewNop(), mock)

	got := svc.Report(context.Background(), "tomato", "hi-IN")
	if got != "| Crop Variety | ... |" {
		t.Fatalf("unexpected report: %q", got)
	}
	if len(mock.Prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(mock.Prompts))
	}
	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, "Tomato (Nati): Avg: 50") {
		t.Fatalf("prompt missing price rows: %q", prompt)
	}
	if !strings.Contains(prompt, "**hi**") {
		t.Fatalf("prompt missing language code: %q", prompt)
	}
}

func TestPriceService_ReportModelFailure(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("model down")}
	svc := NewPriceService(zap.NewNop(), mock)

	if got := svc.Report(context.Background(), "onion", "en-US"); got != priceFailureMsg {
		t.Fatalf("expected failure message, got %q", got)
	}
}
