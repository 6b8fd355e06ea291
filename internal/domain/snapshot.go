package domain

import "time"

// Snapshot is the whole pipeline state as exposed to presentation code. A
// snapshot is a value: it is rebuilt on every mutation and never shared as
// mutable state, so a reader always observes a consistent cross-field view.
type Snapshot struct {
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	Stage       Stage          `json:"current_stage"`
	Busy        bool           `json:"is_busy"`
	LastError   string         `json:"last_error,omitempty"`
	Trends      []Trend        `json:"trends,omitempty"`
	Trend       *Trend         `json:"trend,omitempty"`
	Script      Script         `json:"script"`
	Voice       *VoiceTrack    `json:"voice,omitempty"`
	Assets      AssetSet       `json:"assets"`
	Video       *VideoArtifact `json:"video,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
