// Package pipeline implements the stage coordinator for the video creation
// wizard: a six-stage state machine (discovery through complete) whose
// artifacts are produced by external generation services and gated behind
// explicit user approval at every stage.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"autostream/internal/domain"
	"autostream/internal/gateway"
)

// ErrBusy rejects a mutation while another operation is still in flight. The
// pipeline is a wizard, not a concurrent job queue: at most one generation
// call runs at a time.
var ErrBusy = &domain.Error{Kind: domain.ErrValidation, Message: "another operation is already in progress"}

// Defaults applied when the caller leaves generation knobs empty, matching
// the request defaults of the HTTP surface.
const (
	DefaultTone      = "professional"
	DefaultLength    = "short"
	DefaultQuality   = "high"
	DefaultTrendsCap = 10
	maxTrendsCap     = 50

	// narration pacing used to estimate duration from edited script text
	wordsPerMinute = 150
)

// Coordinator is the single authority over one pipeline: where it is, whether
// it may move, and which artifact writes are allowed. All mutations pass
// through it; readers get detached snapshots.
type Coordinator struct {
	svc gateway.Service
	log zerolog.Logger

	mu        sync.Mutex
	id        string
	name      string
	createdAt time.Time
	updatedAt time.Time
	busy      bool
	lastErr   string
	epoch     int
	store     *store

	subs    map[int]chan domain.Snapshot
	nextSub int
}

// New constructs an empty coordinator for a freshly created project.
func New(id, name string, svc gateway.Service, log zerolog.Logger) *Coordinator {
	now := time.Now().UTC()
	return &Coordinator{
		svc:       svc,
		log:       log.With().Str("component", "pipeline").Str("project_id", id).Logger(),
		id:        id,
		name:      name,
		createdAt: now,
		updatedAt: now,
		store:     newStore(),
		subs:      map[int]chan domain.Snapshot{},
	}
}

// ID returns the project identifier.
func (c *Coordinator) ID() string { return c.id }

// Name returns the project name.
func (c *Coordinator) Name() string { return c.name }

// Snapshot returns the current pipeline state as a detached value.
func (c *Coordinator) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a snapshot listener. The channel is buffered and
// publications are dropped rather than blocked when the listener lags; the
// latest state is always available through Snapshot. The returned function
// cancels the subscription.
func (c *Coordinator) Subscribe() (<-chan domain.Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan domain.Snapshot, 8)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// SearchTrends runs a discovery search and replaces the candidate list. The
// prior list survives a failed search, and the stage never changes.
func (c *Coordinator) SearchTrends(ctx context.Context, query, niche string, limit int) ([]domain.Trend, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = DefaultTrendsCap
	}
	if limit > maxTrendsCap {
		limit = maxTrendsCap
	}
	epoch, err := c.begin(func(s *store) error {
		if query == "" {
			return domain.Validationf("search query is required")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	trends, err := c.svc.SearchTrends(ctx, gateway.TrendQuery{Query: query, Niche: niche, Limit: limit})
	if err != nil {
		return nil, c.finish(epoch, err, nil)
	}
	if len(trends) > limit {
		trends = trends[:limit]
	}
	return trends, c.finish(epoch, nil, func(s *store) {
		s.setTrends(trends)
	})
}

// SelectTrend commits one of the last-searched trends, clears every artifact
// derived from the previous trend, and advances to scripting. Trends that
// were not part of the last search are rejected as stale.
func (c *Coordinator) SelectTrend(trend domain.Trend) error {
	return c.do(func(s *store) error {
		if s.stage != domain.StageDiscovery {
			return domain.Validationf("cannot select a trend while in the %s stage", s.stage)
		}
		if trend.ID == "" || !s.hasSearched(trend.ID) {
			return domain.Validationf("trend is not part of the latest search results")
		}
		s.selectTrend(trend)
		return advance(s, triggerSelectTrend)
	})
}

// GenerateScript asks the scripting backend for a draft based on the selected
// trend. The result replaces the script wholesale and drops any voice track or
// video derived from the previous text, but never advances the stage:
// scripting has a separate review-then-approve gate.
func (c *Coordinator) GenerateScript(ctx context.Context, tone, length string) (domain.Script, error) {
	if tone == "" {
		tone = DefaultTone
	}
	if length == "" {
		length = DefaultLength
	}
	var req gateway.ScriptRequest
	epoch, err := c.begin(func(s *store) error {
		if s.stage != domain.StageScripting {
			return domain.Validationf("cannot generate a script while in the %s stage", s.stage)
		}
		if s.trend == nil {
			return domain.Validationf("no trend selected")
		}
		req = gateway.ScriptRequest{
			Title:       s.trend.Title,
			Description: s.trend.Description,
			Tone:        tone,
			Length:      length,
		}
		return nil
	})
	if err != nil {
		return domain.Script{}, err
	}

	result, err := c.svc.GenerateScript(ctx, req)
	if err != nil {
		return domain.Script{}, c.finish(epoch, err, nil)
	}
	script := domain.Script{
		Title:                    result.Title,
		Content:                  result.Content,
		EstimatedDurationSeconds: result.EstimatedDurationSeconds,
		WordCount:                len(strings.Fields(result.Content)),
	}
	return script, c.finish(epoch, nil, func(s *store) {
		s.replaceScript(script)
	})
}

// UpdateScript commits an edited script text atomically and re-estimates its
// duration from word count. It does not invalidate an existing voice track;
// the track keeps the text it was generated from so drift stays detectable.
func (c *Coordinator) UpdateScript(content string) (domain.Script, error) {
	var updated domain.Script
	err := c.do(func(s *store) error {
		if s.stage != domain.StageScripting {
			return domain.Validationf("cannot edit the script while in the %s stage", s.stage)
		}
		words := len(strings.Fields(content))
		updated = domain.Script{
			Title:                    s.script.Title,
			Content:                  content,
			EstimatedDurationSeconds: float64(words) / wordsPerMinute * 60,
			WordCount:                words,
		}
		s.setScript(updated)
		return nil
	})
	return updated, err
}

// ApproveScript advances scripting to voicing when the script is non-empty.
func (c *Coordinator) ApproveScript() error {
	return c.do(func(s *store) error { return advance(s, triggerApproveScript) })
}

// GenerateAudio synthesizes a voiceover for the current script. The produced
// track is bound by value to the exact text it was generated from.
func (c *Coordinator) GenerateAudio(ctx context.Context, voiceID string, stability, similarity float64) (domain.VoiceTrack, error) {
	var text string
	epoch, err := c.begin(func(s *store) error {
		if s.stage != domain.StageVoicing {
			return domain.Validationf("cannot generate audio while in the %s stage", s.stage)
		}
		if strings.TrimSpace(s.script.Content) == "" {
			return domain.Validationf("no script content available")
		}
		if strings.TrimSpace(voiceID) == "" {
			return domain.Validationf("a voice must be selected")
		}
		if stability < 0 || stability > 1 {
			return domain.Validationf("stability must be between 0 and 1")
		}
		if similarity < 0 || similarity > 1 {
			return domain.Validationf("similarity boost must be between 0 and 1")
		}
		text = s.script.Content
		return nil
	})
	if err != nil {
		return domain.VoiceTrack{}, err
	}

	result, err := c.svc.SynthesizeVoice(ctx, gateway.VoiceRequest{
		Text:       text,
		VoiceID:    voiceID,
		Stability:  stability,
		Similarity: similarity,
	})
	if err != nil {
		return domain.VoiceTrack{}, c.finish(epoch, err, nil)
	}
	track := domain.VoiceTrack{
		SourceScript:    text,
		VoiceID:         voiceID,
		Stability:       stability,
		Similarity:      similarity,
		AudioRef:        result.AudioRef,
		AudioURL:        result.AudioURL,
		DurationSeconds: result.DurationSeconds,
	}
	return track, c.finish(epoch, nil, func(s *store) {
		s.setVoice(track)
	})
}

// ApproveAudio advances voicing to asset configuration.
func (c *Coordinator) ApproveAudio() error {
	return c.do(func(s *store) error { return advance(s, triggerApproveAudio) })
}

// UploadAsset stores one asset file and records its handle in the matching
// slot. Slots are independent; uploading a logo never disturbs the avatar.
func (c *Coordinator) UploadAsset(ctx context.Context, kind domain.AssetKind, filename string, data []byte) (domain.AssetRef, error) {
	epoch, err := c.begin(func(s *store) error {
		if s.stage != domain.StageAssetConfig {
			return domain.Validationf("cannot upload assets while in the %s stage", s.stage)
		}
		if !kind.Valid() {
			return domain.Validationf("unknown asset kind %q", kind)
		}
		if len(data) == 0 {
			return domain.Validationf("uploaded file is empty")
		}
		return nil
	})
	if err != nil {
		return domain.AssetRef{}, err
	}

	result, err := c.svc.StoreUpload(ctx, kind, filename, data)
	if err != nil {
		return domain.AssetRef{}, c.finish(epoch, err, nil)
	}
	ref := domain.AssetRef{Ref: result.Ref, URL: result.URL}
	return ref, c.finish(epoch, nil, func(s *store) {
		s.setAsset(kind, ref)
	})
}

// ApproveAssets advances asset configuration to rendering once an avatar is
// present. This is a distinct gate from ApproveVideo even though the original
// wizard reused one button label for both.
func (c *Coordinator) ApproveAssets() error {
	return c.do(func(s *store) error { return advance(s, triggerApproveAssets) })
}

// GenerateVideo renders the final video from the configured avatar and
// voiceover. Both must exist regardless of the chosen quality preset.
func (c *Coordinator) GenerateVideo(ctx context.Context, useLipSync bool, quality string) (domain.VideoArtifact, error) {
	if quality == "" {
		quality = DefaultQuality
	}
	var req gateway.RenderRequest
	epoch, err := c.begin(func(s *store) error {
		if s.stage != domain.StageRendering {
			return domain.Validationf("cannot render while in the %s stage", s.stage)
		}
		if s.assets.Avatar == nil || s.voice == nil || s.voice.AudioRef == "" {
			return domain.Validationf("an avatar image and a voiceover are both required to render")
		}
		req = gateway.RenderRequest{
			AvatarRef:  s.assets.Avatar.Ref,
			AudioRef:   s.voice.AudioRef,
			UseLipSync: useLipSync,
			Quality:    quality,
		}
		if s.assets.Background != nil {
			req.BackgroundRef = s.assets.Background.Ref
		}
		if s.assets.Logo != nil {
			req.LogoRef = s.assets.Logo.Ref
		}
		return nil
	})
	if err != nil {
		return domain.VideoArtifact{}, err
	}

	result, err := c.svc.RenderVideo(ctx, req)
	if err != nil {
		return domain.VideoArtifact{}, c.finish(epoch, err, nil)
	}
	video := domain.VideoArtifact{
		OutputRef:       result.OutputRef,
		PreviewURL:      result.PreviewURL,
		DurationSeconds: result.DurationSeconds,
		Resolution:      result.Resolution,
		ByteSize:        result.ByteSize,
	}
	return video, c.finish(epoch, nil, func(s *store) {
		s.setVideo(video)
	})
}

// ApproveVideo advances rendering to complete once an output exists.
func (c *Coordinator) ApproveVideo() error {
	return c.do(func(s *store) error { return advance(s, triggerApproveVideo) })
}

// PreviousStep moves one stage back without clearing anything, so the user
// can review or regenerate earlier artifacts.
func (c *Coordinator) PreviousStep() error {
	return c.do(func(s *store) error {
		if s.stage == domain.StageDiscovery {
			return domain.Validationf("already at the first stage")
		}
		s.stage--
		return nil
	})
}

// Reset unconditionally returns the pipeline to discovery with an empty
// artifact store. A generation call still in flight keeps the busy flag until
// it returns, but its result is discarded rather than written into the fresh
// store.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.store.reset()
	c.lastErr = ""
	c.updatedAt = time.Now().UTC()
	c.log.Info().Msg("pipeline reset")
	c.publishLocked()
}

// begin gates the start of a mutation: it rejects re-entry while busy, clears
// the previous error, runs the precondition check against live state and, on
// success, marks the pipeline busy. It returns the epoch the operation belongs
// to so results of calls that straddled a reset can be discarded.
func (c *Coordinator) begin(check func(*store) error) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return 0, ErrBusy
	}
	c.lastErr = ""
	if err := check(c.store); err != nil {
		c.lastErr = err.Error()
		c.updatedAt = time.Now().UTC()
		c.publishLocked()
		return 0, err
	}
	c.busy = true
	c.publishLocked()
	return c.epoch, nil
}

// finish releases the busy gate on every path. On success the apply function
// writes the artifact in one step, so a failed call leaves the store exactly
// as it was before the operation started.
func (c *Coordinator) finish(epoch int, opErr error, apply func(*store)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.updatedAt = time.Now().UTC()
	switch {
	case opErr != nil:
		c.lastErr = opErr.Error()
		c.log.Warn().Str("kind", string(domain.KindOf(opErr))).Msg(opErr.Error())
	case epoch != c.epoch:
		c.log.Debug().Msg("discarding result of operation that straddled a reset")
	case apply != nil:
		apply(c.store)
	}
	c.publishLocked()
	return opErr
}

// do runs a synchronous mutation under the same busy gate and error
// bookkeeping as the asynchronous operations.
func (c *Coordinator) do(op func(*store) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.lastErr = ""
	err := op(c.store)
	if err != nil {
		c.lastErr = err.Error()
	}
	c.updatedAt = time.Now().UTC()
	c.publishLocked()
	return err
}

func (c *Coordinator) snapshotLocked() domain.Snapshot {
	snap := c.store.snapshot()
	snap.ProjectID = c.id
	snap.ProjectName = c.name
	snap.Busy = c.busy
	snap.LastError = c.lastErr
	snap.CreatedAt = c.createdAt
	snap.UpdatedAt = c.updatedAt
	return snap
}

func (c *Coordinator) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
