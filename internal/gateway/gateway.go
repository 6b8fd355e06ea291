// Package gateway is the uniform boundary between the pipeline coordinator
// and the external generation services. Every capability is one bounded
// request/response round trip, and every failure is normalized into a
// domain.Error so the coordinator never has to care which backend misbehaved.
package gateway

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"autostream/internal/domain"
)

// TrendQuery describes a trend search request.
type TrendQuery struct {
	Query string
	Niche string
	Limit int
}

// ScriptRequest carries the selected trend plus generation knobs.
type ScriptRequest struct {
	Title       string
	Description string
	Tone        string
	Length      string
}

// ScriptResult is a generated script before the coordinator commits it.
type ScriptResult struct {
	Title                    string
	Content                  string
	EstimatedDurationSeconds float64
}

// VoiceRequest carries the script text and synthesis parameters.
type VoiceRequest struct {
	Text       string
	VoiceID    string
	Stability  float64
	Similarity float64
}

// VoiceResult references the stored voiceover.
type VoiceResult struct {
	AudioRef        string
	AudioURL        string
	DurationSeconds float64
}

// UploadResult is the opaque handle returned for a stored asset.
type UploadResult struct {
	Ref string
	URL string
}

// RenderRequest names the inputs of a video render by storage ref.
type RenderRequest struct {
	AvatarRef     string
	AudioRef      string
	BackgroundRef string
	LogoRef       string
	UseLipSync    bool
	Quality       string
}

// RenderResult references the rendered output.
type RenderResult struct {
	OutputRef       string
	PreviewURL      string
	DurationSeconds float64
	Resolution      string
	ByteSize        int64
}

// Health summarizes backend availability.
type Health struct {
	Status   string          `json:"status"`
	Services map[string]bool `json:"services"`
}

// Service is the full capability surface the coordinator consumes.
type Service interface {
	SearchTrends(ctx context.Context, q TrendQuery) ([]domain.Trend, error)
	GenerateScript(ctx context.Context, req ScriptRequest) (*ScriptResult, error)
	SynthesizeVoice(ctx context.Context, req VoiceRequest) (*VoiceResult, error)
	StoreUpload(ctx context.Context, kind domain.AssetKind, filename string, data []byte) (*UploadResult, error)
	RenderVideo(ctx context.Context, req RenderRequest) (*RenderResult, error)
	HealthCheck(ctx context.Context) (*Health, error)
}

// TrendSearcher is the discovery backend.
type TrendSearcher interface {
	Search(ctx context.Context, query, niche string, limit int) ([]domain.Trend, error)
	Available(ctx context.Context) bool
}

// ScriptWriter is the LLM scripting backend.
type ScriptWriter interface {
	Generate(ctx context.Context, title, description, tone, length string) (*ScriptResult, error)
	Available(ctx context.Context) bool
}

// VoiceSynthesizer is the text-to-speech backend. It returns raw audio bytes;
// the gateway persists them and hands the coordinator a storage ref.
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string, stability, similarity float64) (audio []byte, durationSeconds float64, err error)
	Available(ctx context.Context) bool
}

// VideoRenderer is the lip-sync render backend.
type VideoRenderer interface {
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)
	Available(ctx context.Context) bool
}

// UploadStore persists raw bytes and resolves retrieval URLs for stored keys.
type UploadStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	URLFor(key string) string
}

// VoiceResolver maps catalog voice IDs onto backend voice identifiers.
type VoiceResolver interface {
	Resolve(voiceID string) (providerID string, ok bool)
}

// Gateway fans the Service surface out to the concrete backends.
type Gateway struct {
	trends TrendSearcher
	script ScriptWriter
	voice  VoiceSynthesizer
	video  VideoRenderer
	store  UploadStore
	voices VoiceResolver
	log    zerolog.Logger
}

// Options wires the backends into a Gateway.
type Options struct {
	Trends TrendSearcher
	Script ScriptWriter
	Voice  VoiceSynthesizer
	Video  VideoRenderer
	Store  UploadStore
	Voices VoiceResolver
	Logger zerolog.Logger
}

// New builds a Gateway from the given backends.
func New(opts Options) *Gateway {
	return &Gateway{
		trends: opts.Trends,
		script: opts.Script,
		voice:  opts.Voice,
		video:  opts.Video,
		store:  opts.Store,
		voices: opts.Voices,
		log:    opts.Logger,
	}
}

// SearchTrends runs one discovery search.
func (g *Gateway) SearchTrends(ctx context.Context, q TrendQuery) ([]domain.Trend, error) {
	trends, err := g.trends.Search(ctx, q.Query, q.Niche, q.Limit)
	if err != nil {
		return nil, Normalize("search trends", err)
	}
	g.log.Debug().Int("count", len(trends)).Str("query", q.Query).Msg("gateway: trends searched")
	return trends, nil
}

// GenerateScript asks the scripting backend for a script draft.
func (g *Gateway) GenerateScript(ctx context.Context, req ScriptRequest) (*ScriptResult, error) {
	result, err := g.script.Generate(ctx, req.Title, req.Description, req.Tone, req.Length)
	if err != nil {
		return nil, Normalize("generate script", err)
	}
	if strings.TrimSpace(result.Content) == "" {
		return nil, domain.Upstreamf("generate script: backend returned an empty script")
	}
	return result, nil
}

// SynthesizeVoice produces a voiceover and persists it, returning the
// storage ref instead of the raw bytes.
func (g *Gateway) SynthesizeVoice(ctx context.Context, req VoiceRequest) (*VoiceResult, error) {
	providerID := req.VoiceID
	if g.voices != nil {
		if id, ok := g.voices.Resolve(req.VoiceID); ok {
			providerID = id
		}
	}
	audio, duration, err := g.voice.Synthesize(ctx, req.Text, providerID, req.Stability, req.Similarity)
	if err != nil {
		return nil, Normalize("synthesize voice", err)
	}
	if len(audio) == 0 {
		return nil, domain.Upstreamf("synthesize voice: backend returned no audio")
	}
	key, err := g.store.Write(ctx, audioKey(req.VoiceID), audio)
	if err != nil {
		return nil, Normalize("store voiceover", err)
	}
	return &VoiceResult{AudioRef: key, AudioURL: g.store.URLFor(key), DurationSeconds: duration}, nil
}

// StoreUpload persists a user upload under its kind-scoped prefix.
func (g *Gateway) StoreUpload(ctx context.Context, kind domain.AssetKind, filename string, data []byte) (*UploadResult, error) {
	if !kind.Valid() {
		return nil, domain.Validationf("store upload: unknown asset kind %q", kind)
	}
	if len(data) == 0 {
		return nil, domain.Validationf("store upload: file is empty")
	}
	key, err := g.store.Write(ctx, uploadKey(kind, filename), data)
	if err != nil {
		return nil, Normalize("store upload", err)
	}
	return &UploadResult{Ref: key, URL: g.store.URLFor(key)}, nil
}

// RenderVideo runs one render round trip.
func (g *Gateway) RenderVideo(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	result, err := g.video.Render(ctx, req)
	if err != nil {
		return nil, Normalize("render video", err)
	}
	if result.PreviewURL == "" && result.OutputRef != "" {
		result.PreviewURL = g.store.URLFor(result.OutputRef)
	}
	return result, nil
}

// HealthCheck probes every backend and reports per-service availability.
func (g *Gateway) HealthCheck(ctx context.Context) (*Health, error) {
	services := map[string]bool{
		"trends": g.trends.Available(ctx),
		"script": g.script.Available(ctx),
		"voice":  g.voice.Available(ctx),
		"video":  g.video.Available(ctx),
	}
	status := "healthy"
	for _, ok := range services {
		if !ok {
			status = "degraded"
			break
		}
	}
	return &Health{Status: status, Services: services}, nil
}
