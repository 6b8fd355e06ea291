package pipeline

import (
	"strings"

	"autostream/internal/domain"
)

// store is the in-memory artifact record for one pipeline. It applies only
// invariant-preserving writes and performs no I/O. The coordinator owns the
// lock; the store assumes single-threaded access.
type store struct {
	stage  domain.Stage
	trends []domain.Trend
	trend  *domain.Trend
	script domain.Script
	voice  *domain.VoiceTrack
	assets domain.AssetSet
	video  *domain.VideoArtifact
}

func newStore() *store {
	return &store{stage: domain.StageDiscovery}
}

// setTrends replaces the candidate list without touching the selection.
func (s *store) setTrends(trends []domain.Trend) {
	s.trends = trends
}

// selectTrend commits the selection and clears every downstream artifact,
// since script, voice and video were all derived from the prior trend.
func (s *store) selectTrend(trend domain.Trend) {
	t := trend
	s.trend = &t
	s.script = domain.Script{}
	s.voice = nil
	s.assets = domain.AssetSet{}
	s.video = nil
}

// hasSearched reports whether the trend is one of the last search results.
func (s *store) hasSearched(id string) bool {
	for _, t := range s.trends {
		if t.ID == id {
			return true
		}
	}
	return false
}

// setScript replaces the script wholesale. Manual edits keep an existing
// voice track; drift between the two stays visible through SourceScript.
func (s *store) setScript(script domain.Script) {
	s.script = script
}

// replaceScript commits a freshly generated script and clears the artifacts
// derived from the previous one. The asset uploads are not script-derived and
// survive.
func (s *store) replaceScript(script domain.Script) {
	s.script = script
	s.voice = nil
	s.video = nil
}

func (s *store) setVoice(voice domain.VoiceTrack) {
	v := voice
	s.voice = &v
}

// assetSetters maps each asset kind onto its slot so a new kind cannot be
// added without also deciding where it lands.
var assetSetters = map[domain.AssetKind]func(*domain.AssetSet, domain.AssetRef){
	domain.AssetAvatar:     func(a *domain.AssetSet, r domain.AssetRef) { a.Avatar = &r },
	domain.AssetLogo:       func(a *domain.AssetSet, r domain.AssetRef) { a.Logo = &r },
	domain.AssetBackground: func(a *domain.AssetSet, r domain.AssetRef) { a.Background = &r },
}

// setAsset updates a single asset slot, leaving its siblings untouched.
func (s *store) setAsset(kind domain.AssetKind, ref domain.AssetRef) bool {
	set, ok := assetSetters[kind]
	if !ok {
		return false
	}
	set(&s.assets, ref)
	return true
}

func (s *store) setVideo(video domain.VideoArtifact) {
	v := video
	s.video = &v
}

// reset drops everything and returns the pipeline to discovery.
func (s *store) reset() {
	*s = store{stage: domain.StageDiscovery}
}

// completed reports whether the artifact that finishes the given stage exists.
func (s *store) completed(stage domain.Stage) bool {
	switch stage {
	case domain.StageDiscovery:
		return s.trend != nil
	case domain.StageScripting:
		return strings.TrimSpace(s.script.Content) != ""
	case domain.StageVoicing:
		return s.voice != nil && s.voice.AudioRef != ""
	case domain.StageAssetConfig:
		return s.assets.Avatar != nil
	case domain.StageRendering:
		return s.video != nil && s.video.OutputRef != ""
	}
	return false
}

// snapshot copies the store into a detached value. Slices and pointer fields
// are duplicated so callers can never reach back into live state.
func (s *store) snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Stage:  s.stage,
		Script: s.script,
		Assets: copyAssets(s.assets),
	}
	if len(s.trends) > 0 {
		snap.Trends = make([]domain.Trend, len(s.trends))
		copy(snap.Trends, s.trends)
	}
	if s.trend != nil {
		t := *s.trend
		snap.Trend = &t
	}
	if s.voice != nil {
		v := *s.voice
		snap.Voice = &v
	}
	if s.video != nil {
		v := *s.video
		snap.Video = &v
	}
	return snap
}

func copyAssets(a domain.AssetSet) domain.AssetSet {
	var out domain.AssetSet
	if a.Avatar != nil {
		r := *a.Avatar
		out.Avatar = &r
	}
	if a.Logo != nil {
		r := *a.Logo
		out.Logo = &r
	}
	if a.Background != nil {
		r := *a.Background
		out.Background = &r
	}
	return out
}
