package pipeline

import (
	"strings"

	"autostream/internal/domain"
)

// trigger names a user intent that may advance the pipeline.
type trigger string

const (
	triggerSelectTrend   trigger = "select trend"
	triggerApproveScript trigger = "approve script"
	triggerApproveAudio  trigger = "approve audio"
	triggerApproveAssets trigger = "approve assets"
	triggerApproveVideo  trigger = "approve video"
)

// transition is one row of the forward-navigation table: the stage the
// trigger fires from, the stage it moves to, and the artifact guard that must
// hold before the move is allowed.
type transition struct {
	from  domain.Stage
	to    domain.Stage
	guard func(*store) error
}

var transitions = map[trigger]transition{
	triggerSelectTrend: {
		from: domain.StageDiscovery,
		to:   domain.StageScripting,
		guard: func(s *store) error {
			if s.trend == nil {
				return domain.Validationf("no trend selected")
			}
			return nil
		},
	},
	triggerApproveScript: {
		from: domain.StageScripting,
		to:   domain.StageVoicing,
		guard: func(s *store) error {
			if strings.TrimSpace(s.script.Content) == "" {
				return domain.Validationf("cannot approve an empty script")
			}
			return nil
		},
	},
	triggerApproveAudio: {
		from: domain.StageVoicing,
		to:   domain.StageAssetConfig,
		guard: func(s *store) error {
			if s.voice == nil || s.voice.AudioRef == "" {
				return domain.Validationf("no voiceover has been generated")
			}
			return nil
		},
	},
	triggerApproveAssets: {
		from: domain.StageAssetConfig,
		to:   domain.StageRendering,
		guard: func(s *store) error {
			if s.assets.Avatar == nil {
				return domain.Validationf("an avatar image is required")
			}
			return nil
		},
	},
	triggerApproveVideo: {
		from: domain.StageRendering,
		to:   domain.StageComplete,
		guard: func(s *store) error {
			if s.video == nil || s.video.OutputRef == "" {
				return domain.Validationf("no video has been rendered")
			}
			return nil
		},
	},
}

// advance applies the named trigger to the store, enforcing both the
// from-stage and the artifact guard. It mutates only the stage pointer.
func advance(s *store, t trigger) error {
	tr, ok := transitions[t]
	if !ok {
		return domain.Validationf("unknown transition %q", t)
	}
	if s.stage != tr.from {
		return domain.Validationf("cannot %s while in the %s stage", t, s.stage)
	}
	if err := tr.guard(s); err != nil {
		return err
	}
	s.stage = tr.to
	return nil
}
