// Package heygem renders avatar videos through a HeyGem lip-sync server.
package heygem

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

// Options configures the HeyGem client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the HeyGem render API. A render is a single
// long request/response round trip bounded by the client timeout; there is no
// cancellation beyond that timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type renderRequest struct {
	AvatarRef     string `json:"avatar_ref"`
	AudioRef      string `json:"audio_ref"`
	BackgroundRef string `json:"background_ref,omitempty"`
	LogoRef       string `json:"logo_ref,omitempty"`
	LipSync       bool   `json:"lip_sync"`
	Quality       string `json:"quality"`
}

type renderResponse struct {
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
	OutputRef  string  `json:"output_ref"`
	VideoURL   string  `json:"video_url"`
	Duration   float64 `json:"duration"`
	Resolution string  `json:"resolution"`
	FileSize   int64   `json:"file_size"`
}

// NewClient constructs a client with sane defaults. Renders are slow, so the
// default timeout is generous.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 300 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Render submits one render job and waits for the result.
func (c *Client) Render(ctx context.Context, req gateway.RenderRequest) (*gateway.RenderResult, error) {
	if req.AvatarRef == "" || req.AudioRef == "" {
		return nil, errors.New("heygem: avatar and audio refs are required")
	}
	payload := renderRequest{
		AvatarRef:     req.AvatarRef,
		AudioRef:      req.AudioRef,
		BackgroundRef: req.BackgroundRef,
		LogoRef:       req.LogoRef,
		LipSync:       req.UseLipSync,
		Quality:       req.Quality,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("heygem: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("heygem: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("heygem: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("heygem: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("heygem: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded renderResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("heygem: decode response: %w", err)
	}
	if !decoded.Success && decoded.Error != "" {
		return nil, fmt.Errorf("heygem: %s", decoded.Error)
	}
	if decoded.OutputRef == "" && decoded.VideoURL == "" {
		return nil, errors.New("heygem: render returned no output")
	}

	c.logger.Info().
		Dur("elapsed", time.Since(started)).
		Str("output_ref", decoded.OutputRef).
		Str("resolution", decoded.Resolution).
		Msg("heygem: render complete")
	return &gateway.RenderResult{
		OutputRef:       decoded.OutputRef,
		PreviewURL:      decoded.VideoURL,
		DurationSeconds: decoded.Duration,
		Resolution:      decoded.Resolution,
		ByteSize:        decoded.FileSize,
	}, nil
}

// Available probes the health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
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
