// Package firecrawl talks to a Firecrawl instance for trend discovery.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"autostream/internal/domain"
)

// Options configures the Firecrawl client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Firecrawl search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type searchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    []struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		URL         string  `json:"url"`
		Score       float64 `json:"score,omitempty"`
	} `json:"data"`
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:3002"
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Search runs one trend search and maps the results into trend candidates,
// ordered as returned by the backend.
func (c *Client) Search(ctx context.Context, query, niche string, limit int) ([]domain.Trend, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("firecrawl: query is required")
	}
	if limit <= 0 {
		limit = 10
	}
	fullQuery := query
	if niche = strings.TrimSpace(niche); niche != "" && !strings.EqualFold(niche, "general") {
		fullQuery = query + " " + niche
	}
	fullQuery += " trending"

	body, err := json.Marshal(searchRequest{Query: fullQuery, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("firecrawl: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("firecrawl: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firecrawl: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("firecrawl: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("firecrawl: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded searchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("firecrawl: decode response: %w", err)
	}
	if !decoded.Success && decoded.Error != "" {
		return nil, fmt.Errorf("firecrawl: %s", decoded.Error)
	}

	now := time.Now().UTC()
	trends := make([]domain.Trend, 0, len(decoded.Data))
	for i, item := range decoded.Data {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		score := item.Score
		if score == 0 {
			// backend gave no relevance score; keep the returned order
			score = float64(len(decoded.Data)-i) / float64(len(decoded.Data))
		}
		trends = append(trends, domain.Trend{
			ID:          uuid.NewString()[:8],
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			Source:      sourceOf(item.URL),
			URL:         item.URL,
			Engagement:  score,
			ScrapedAt:   now,
		})
		if len(trends) == limit {
			break
		}
	}
	c.logger.Debug().Int("count", len(trends)).Str("query", fullQuery).Msg("firecrawl: search complete")
	return trends, nil
}

// Available probes the scrape status endpoint.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func sourceOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "firecrawl"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
