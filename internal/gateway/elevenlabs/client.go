// Package elevenlabs synthesizes voiceovers through the ElevenLabs API.
package elevenlabs

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
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("elevenlabs: api key is required")

// Options configures the ElevenLabs client.
type Options struct {
	APIKey         string
	BaseURL        string
	ModelID        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the ElevenLabs text-to-speech API.
type Client struct {
	apiKey     string
	baseURL    string
	modelID    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type errorResponse struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}

// mp3 output bitrate used to estimate duration when the backend reports none
const outputBitrateBps = 128_000

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	modelID := strings.TrimSpace(opts.ModelID)
	if modelID == "" {
		modelID = "eleven_monolingual_v1"
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		modelID:    modelID,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Synthesize renders the text with the given voice and returns the mp3 bytes
// plus an estimated duration in seconds.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string, stability, similarity float64) ([]byte, float64, error) {
	if !c.HasCredentials() {
		return nil, 0, ErrMissingAPIKey
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, 0, errors.New("elevenlabs: text is required")
	}
	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		return nil, 0, errors.New("elevenlabs: voice id is required")
	}

	payload := synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       stability,
			SimilarityBoost: similarity,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("elevenlabs: encode request: %w", err)
	}
	endpoint := c.baseURL + "/v1/text-to-speech/" + voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("elevenlabs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("elevenlabs: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("elevenlabs: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail.Message != "" {
			return nil, 0, fmt.Errorf("elevenlabs: %s (%s)", detail.Detail.Message, detail.Detail.Status)
		}
		return nil, 0, fmt.Errorf("elevenlabs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if len(raw) == 0 {
		return nil, 0, errors.New("elevenlabs: empty audio response")
	}

	duration := float64(len(raw)*8) / outputBitrateBps
	c.logger.Debug().
		Str("voice_id", voiceID).
		Int("bytes", len(raw)).
		Float64("duration_s", duration).
		Msg("elevenlabs: synthesized voiceover")
	return raw, duration, nil
}

// Available probes the voices endpoint with the configured key.
func (c *Client) Available(ctx context.Context) bool {
	if !c.HasCredentials() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/voices", nil)
	if err != nil {
		return false
	}
	req.Header.Set("xi-api-key", c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
