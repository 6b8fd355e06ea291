// Package ollama generates video scripts through a local Ollama instance.
package ollama

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

	"github.com/rs/zerolog"

	"autostream/internal/gateway"
)

// Options configures the Ollama client.
type Options struct {
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Ollama generate API.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type scriptPayload struct {
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	DurationEstimate float64 `json:"duration_estimate"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// target word counts per requested length
var lengthWords = map[string]int{
	"short":  110,
	"medium": 220,
	"long":   450,
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "llama3"
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate asks the model for a narration script about the given trend and
// returns the parsed draft.
func (c *Client) Generate(ctx context.Context, title, description, tone, length string) (*gateway.ScriptResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("ollama: topic title is required")
	}

	payload := generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(title, description, tone, length),
		Format: "json",
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("ollama: %s", decoded.Error)
	}

	result := parseScript(decoded.Response, title)
	if strings.TrimSpace(result.Content) == "" {
		return nil, errors.New("ollama: model returned an empty script")
	}
	c.logger.Debug().Str("model", c.model).Int("chars", len(result.Content)).Msg("ollama: script generated")
	return result, nil
}

// ListModels returns the names of the locally available models.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama: status %d", resp.StatusCode)
	}
	var decoded tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	names := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Available reports whether the Ollama host answers.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.ListModels(ctx)
	return err == nil
}

func buildPrompt(title, description, tone, length string) string {
	words, ok := lengthWords[strings.ToLower(length)]
	if !ok {
		words = lengthWords["short"]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Write a faceless video narration script about %q.\n", title)
	if description = strings.TrimSpace(description); description != "" {
		fmt.Fprintf(&b, "Context: %s\n", description)
	}
	fmt.Fprintf(&b, "Tone: %s. Target length: about %d words.\n", tone, words)
	b.WriteString(`Respond with JSON only: {"title": string, "content": string, "duration_estimate": seconds}.`)
	return b.String()
}

// parseScript extracts the structured draft from the model output. Models do
// not always honor the JSON instruction, so plain text falls back to being
// the script body itself.
func parseScript(response, fallbackTitle string) *gateway.ScriptResult {
	var parsed scriptPayload
	text := strings.TrimSpace(response)
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
			_ = json.Unmarshal([]byte(text[start:end+1]), &parsed)
		}
	}
	if strings.TrimSpace(parsed.Content) == "" {
		parsed = scriptPayload{Title: fallbackTitle, Content: text}
	}
	if parsed.Title == "" {
		parsed.Title = fallbackTitle
	}
	if parsed.DurationEstimate <= 0 {
		words := len(strings.Fields(parsed.Content))
		parsed.DurationEstimate = float64(words) / 150 * 60
	}
	return &gateway.ScriptResult{
		Title:                    parsed.Title,
		Content:                  strings.TrimSpace(parsed.Content),
		EstimatedDurationSeconds: parsed.DurationEstimate,
	}
}
