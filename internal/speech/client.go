package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotReady means the synthesizer was constructed without credentials.
// Callers treat it as "no audio available", not a transient failure.
var ErrNotReady = errors.New("speech client not ready")

// Synthesizer converts sanitized text into base64-encoded MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) (string, error)
}

type voiceProfile struct {
	languageCode string
	voiceName    string
}

// Supported UI language tags mapped to a TTS locale and voice. Unknown tags
// fall back to the English entry.
var voiceProfiles = map[string]voiceProfile{
	"en-US": {"en-US", "en-US-Standard-C"},
	"hi-IN": {"hi-IN", "hi-IN-Wavenet-D"},
	"ta-IN": {"ta-IN", "ta-IN-Wavenet-C"},
	"te-IN": {"te-IN", "te-IN-Wavenet-D"},
	"kn-IN": {"kn-IN", "kn-IN-Wavenet-A"},
	"ml-IN": {"ml-IN", "ml-IN-Wavenet-B"},
}

var defaultVoice = voiceProfiles["en-US"]

// VoiceFor resolves the voice profile for a language tag.
func VoiceFor(languageCode string) (string, string) {
	if p, ok := voiceProfiles[languageCode]; ok {
		return p.languageCode, p.voiceName
	}
	return defaultVoice.languageCode, defaultVoice.voiceName
}

// HTTPClient implements Synthesizer against the cloud TTS REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a synthesizer. Returns ErrNotReady when no API key is
// configured so startup can decide whether audio is a hard requirement.
func NewHTTPClient(baseURL, apiKey string) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotReady
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Synthesize returns the audio already base64-encoded, as the API delivers it.
func (c *HTTPClient) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	if c == nil {
		return "", ErrNotReady
	}

	var reqBody synthesizeRequest
	reqBody.Input.Text = text
	reqBody.Voice.LanguageCode, reqBody.Voice.Name = VoiceFor(languageCode)
	reqBody.AudioConfig.AudioEncoding = "MP3"

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text:synthesize?key="+c.apiKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("tts http error: status=%d", resp.StatusCode)
	}

	var sr synthesizeResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if sr.Error != nil {
		return "", fmt.Errorf("tts api error: %s", sr.Error.Message)
	}
	if sr.AudioContent == "" {
		return "", errors.New("tts empty audio")
	}
	return sr.AudioContent, nil
}
