package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"grama-vaani/internal/llm"
	"grama-vaani/internal/schemes"
)

type mockSchemeFinder struct {
	schemes []schemes.Scheme
	err     error
	queries []string
}

func (m *mockSchemeFinder) Search(_ context.Context, keywords string) ([]schemes.Scheme, error) {
	m.queries = append(m.queries, keywords)
	return m.schemes, m.err
}

func TestSchemeService_AdviseFormatsFoundSchemes(t *testing.T) {
	finder := &mockSchemeFinder{schemes: []schemes.Scheme{
		{Title: "PM Kisan", Summary: "Income support for farmers.", Link: "https://example.gov.in/pmkisan"},
	}}
	mock := &llm.MockClient{Response: "| Scheme Name | ... |"}
	svc := NewSchemeService(zap.NewNop(), mock, finder, NewTranslator(zap.NewNop(), mock))

	got := svc.Advise(context.Background(), "income support", "en-US")
	if got != "| Scheme Name | ... |" {
		t.Fatalf("unexpected report: %q", got)
	}
	if len(finder.queries) != 1 || finder.queries[0] != "income support" {
		t.Fatalf("unexpected search queries: %v", finder.queries)
	}
	if len(mock.Prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(mock.Prompts))
	}
	if !strings.Contains(mock.Prompts[0], "Scheme: PM Kisan") {
		t.Fatalf("prompt missing scheme line: %q", mock.Prompts[0])
	}
}

func TestSchemeService_AdviseNoResults(t *testing.T) {
	finder := &mockSchemeFinder{}
	mock := &llm.MockClient{Response: "should not be used"}
	svc := NewSchemeService(zap.NewNop(), mock, finder, nil)

	got := svc.Advise(context.Background(), "unicorn farming", "en-US")
	if got != noSchemesMsg {
		t.Fatalf("expected no-schemes message, got %q", got)
	}
	if len(mock.Prompts) != 0 {
		t.Fatalf("expected no model calls, got %d", len(mock.Prompts))
	}
}

func TestSchemeService_AdviseRegistryFailureIsEmpty(t *testing.T) {
	finder := &mockSchemeFinder{err: errors.New("registry down")}
	svc := NewSchemeService(zap.NewNop(), &llm.MockClient{}, finder, nil)

	if got := svc.Advise(context.Background(), "irrigation", "en-US"); got != noSchemesMsg {
		t.Fatalf("expected no-schemes message on registry failure, got %q", got)
	}
}

func TestSchemeService_AdviseModelFailure(t *testing.T) {
	finder := &mockSchemeFinder{schemes: []schemes.Scheme{{Title: "PM Kisan", Summary: "s", Link: "#"}}}
	svc := NewSchemeService(zap.NewNop(), &llm.MockClient{Err: errors.New("model down")}, finder, nil)

	if got := svc.Advise(context.Background(), "income support", "en-US"); got != schemeFailureMsg {
		t.Fatalf("expected failure message, got %q", got)
	}
}
