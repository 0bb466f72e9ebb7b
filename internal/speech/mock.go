package speech

import "context"

// MockSynthesizer allows tests to run without the TTS service.
type MockSynthesizer struct {
	Audio string
	Err   error
	Texts []string
}

func (m *MockSynthesizer) Synthesize(_ context.Context, text, _ string) (string, error) {
	m.Texts = append(m.Texts, text)
	return m.Audio, m.Err
}
