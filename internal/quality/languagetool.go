package quality

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

// LanguageToolChecker checks grammar against a LanguageTool server's
// /v2/check endpoint.
type LanguageToolChecker struct {
	BaseURL    string
	Language   string
	HTTPClient *http.Client
}

// NewLanguageToolChecker constructs a checker for the given server base URL.
func NewLanguageToolChecker(baseURL string) *LanguageToolChecker {
	return &LanguageToolChecker{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Language:   "en-US",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type ltMatch struct {
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Rule    struct {
		ID string `json:"id"`
	} `json:"rule"`
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

// Check posts the text to LanguageTool and returns its matches.
func (c *LanguageToolChecker) Check(ctx context.Context, text string) ([]Issue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("languagetool request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("languagetool status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("languagetool decode: %w", err)
	}

	issues := make([]Issue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		issues = append(issues, Issue{
			Message: m.Message,
			Rule:    m.Rule.ID,
			Offset:  m.Offset,
			Length:  m.Length,
		})
	}
	return issues, nil
}

func (c *LanguageToolChecker) language() string {
	if c.Language == "" {
		return "en-US"
	}
	return c.Language
}

var _ GrammarChecker = (*LanguageToolChecker)(nil)
