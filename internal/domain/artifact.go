package domain

import "time"

// Trend is one trending topic candidate returned by discovery.
type Trend struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	Engagement  float64   `json:"engagement,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at,omitempty"`
}

// Script is the narration text derived from the selected trend. Every update
// replaces the content wholesale; there is no draft state inside the core.
type Script struct {
	Title                    string  `json:"title,omitempty"`
	Content                  string  `json:"content"`
	EstimatedDurationSeconds float64 `json:"estimated_duration_seconds,omitempty"`
	WordCount                int     `json:"word_count,omitempty"`
}

// VoiceTrack is a synthesized voiceover. SourceScript holds, by value, the
// exact text the audio was generated from, so script edits made afterwards can
// be detected as drift instead of silently "repairing" a stale track.
type VoiceTrack struct {
	SourceScript    string  `json:"source_script"`
	VoiceID         string  `json:"voice_id"`
	Stability       float64 `json:"stability"`
	Similarity      float64 `json:"similarity"`
	AudioRef        string  `json:"audio_ref"`
	AudioURL        string  `json:"audio_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// AssetRef is an opaque upload handle. The pipeline never holds file bytes,
// only the storage key and its retrieval URL.
type AssetRef struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

// AssetKind tags the three upload slots of the asset configuration stage.
type AssetKind string

const (
	AssetAvatar     AssetKind = "avatar"
	AssetLogo       AssetKind = "logo"
	AssetBackground AssetKind = "background"
)

// AssetKinds lists every valid kind in display order.
var AssetKinds = []AssetKind{AssetAvatar, AssetLogo, AssetBackground}

// Valid reports whether k is one of the declared asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetAvatar, AssetLogo, AssetBackground:
		return true
	}
	return false
}

// AssetSet holds the uploads configured for the video. Avatar is required to
// advance past asset configuration; logo and background are optional. The
// three slots are independent: setting one never touches its siblings.
type AssetSet struct {
	Avatar     *AssetRef `json:"avatar,omitempty"`
	Logo       *AssetRef `json:"logo,omitempty"`
	Background *AssetRef `json:"background,omitempty"`
}

// Get returns the slot for the given kind, or nil when unset.
func (s AssetSet) Get(kind AssetKind) *AssetRef {
	switch kind {
	case AssetAvatar:
		return s.Avatar
	case AssetLogo:
		return s.Logo
	case AssetBackground:
		return s.Background
	}
	return nil
}

// VideoArtifact is the rendered output of the pipeline.
type VideoArtifact struct {
	OutputRef       string  `json:"output_ref"`
	PreviewURL      string  `json:"preview_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
	ByteSize        int64   `json:"byte_size,omitempty"`
}
