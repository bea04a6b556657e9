package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client is a thin text-generation client over one of three providers.
// Without an API key it stays disabled and every call is a no-op; the
// analytical answer never depends on it.
type Client struct {
	provider string
	model    string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
}

// NewFromEnv configures the client from the environment. Provider order
// when LLM_PROVIDER is unset: Gemini, Anthropic, OpenAI, first key wins.
func NewFromEnv() *Client {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	anthropicKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	openaiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if provider == "" {
		switch {
		case geminiKey != "":
			provider = "gemini"
		case anthropicKey != "":
			provider = "anthropic"
		case openaiKey != "":
			provider = "openai"
		default:
			provider = "none"
		}
	}

	var key, defaultModel string
	switch provider {
	case "gemini":
		key, defaultModel = geminiKey, "gemini-2.5-flash-lite"
	case "anthropic":
		key, defaultModel = anthropicKey, "claude-3-5-sonnet-latest"
	case "openai":
		key, defaultModel = openaiKey, "gpt-4o-mini"
	}

	model := strings.TrimSpace(os.Getenv("LLM_MODEL"))
	if model == "" {
		model = defaultModel
	}

	timeoutSec := 12
	if v := strings.TrimSpace(os.Getenv("LLM_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSec = n
		}
	}
	timeout := time.Duration(timeoutSec) * time.Second

	return &Client{
		provider: provider,
		model:    model,
		apiKey:   key,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a provider key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.provider != "none" && c.provider != ""
}

// ProviderLabel returns the display name of the active provider.
func (c *Client) ProviderLabel() string {
	switch c.provider {
	case "gemini":
		return "Gemini API"
	case "anthropic":
		return "Claude API"
	case "openai":
		return "OpenAI API"
	}
	return "désactivé"
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// StatusLine summarizes the client state for startup logs.
func (c *Client) StatusLine() string {
	if c.Enabled() {
		return fmt.Sprintf("LLM · %s (%s)", c.ProviderLabel(), c.model)
	}
	return "LLM · Désactivé (clé API absente)"
}

// Generate performs one blocking completion call bounded by the configured
// timeout. An empty completion is an error: the caller treats any error as
// "paraphrase unavailable".
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("llm: no provider configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	switch c.provider {
	case "gemini":
		return c.callGemini(ctx, systemPrompt, userPrompt, maxTokens, temperature)
	case "anthropic":
		return c.callAnthropic(ctx, systemPrompt, userPrompt, maxTokens, temperature)
	case "openai":
		return c.callOpenAI(ctx, systemPrompt, userPrompt, maxTokens, temperature)
	}
	return "", fmt.Errorf("llm: unknown provider %q", c.provider)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, headers map[string]string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("llm: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("llm: call provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("llm: provider returned HTTP %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("llm: decode response: %w", err)
	}
	return nil
}

func (c *Client) callGemini(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		url.PathEscape(c.model), url.QueryEscape(c.apiKey),
	)
	payload := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": userPrompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     temperature,
			"maxOutputTokens": maxTokens,
		},
	}
	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := c.postJSON(ctx, endpoint, nil, payload, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("llm: gemini returned no candidates")
	}
	var texts []string
	for _, p := range out.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return nonEmpty(strings.Join(texts, "\n"))
}

func (c *Client) callAnthropic(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": userPrompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}
	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := c.postJSON(ctx, "https://api.anthropic.com/v1/messages", headers, payload, &out); err != nil {
		return "", err
	}
	var texts []string
	for _, block := range out.Content {
		if block.Type == "text" && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}
	return nonEmpty(strings.Join(texts, "\n"))
}

func (c *Client) callOpenAI(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.postJSON(ctx, "https://api.openai.com/v1/chat/completions", headers, payload, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: openai returned no choices")
	}
	return nonEmpty(out.Choices[0].Message.Content)
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("llm: empty completion")
	}
	return s, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
