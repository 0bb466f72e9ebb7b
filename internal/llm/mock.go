package llm

import "context"

// MockClient allows tests to run without a real model.
type MockClient struct {
	Response  string
	Err       error
	Prompts   []string
	Histories [][]Turn
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}

func (m *MockClient) GenerateWithHistory(_ context.Context, history []Turn, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Histories = append(m.Histories, history)
	return m.Response, m.Err
}

func (m *MockClient) GenerateWithImage(_ context.Context, prompt string, _ []byte, _ string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}
