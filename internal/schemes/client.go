package schemes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Scheme is one government scheme record, summary already truncated for
// prompt embedding.
type Scheme struct {
	Title   string
	Summary string
	Link    string
}

// Finder searches the public scheme registry by keyword.
type Finder interface {
	Search(ctx context.Context, keywords string) ([]Scheme, error)
}

// HTTPClient implements Finder against the data.gov.in resource API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

const maxSummaryLen = 70

func (c *HTTPClient) Search(ctx context.Context, keywords string) ([]Scheme, error) {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", "3")
	params.Set("filters[keywords]", keywords)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("scheme http error: status=%d", resp.StatusCode)
	}

	var payload struct {
		Records []struct {
			SchemeName       string `json:"scheme_name"`
			BriefDescription string `json:"brief_description"`
			MoreDetailsURL   string `json:"more_details_url_link"`
		} `json:"records"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	out := make([]Scheme, 0, len(payload.Records))
	for _, r := range payload.Records {
		out = append(out, Scheme{
			Title:   orDefault(r.SchemeName, "No Title"),
			Summary: TruncateSummary(orDefault(r.BriefDescription, "No Summary")),
			Link:    orDefault(r.MoreDetailsURL, "#"),
		})
	}
	return out, nil
}

// TruncateSummary caps a description at 70 characters, ellipsized.
func TruncateSummary(s string) string {
	if len(s) > maxSummaryLen {
		return s[:maxSummaryLen-3] + "..."
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
