package pipeline

import (
	"testing"

	"autostream/internal/domain"
)

func TestTransitionTableCoversEveryApproval(t *testing.T) {
	wanted := map[trigger][2]domain.Stage{
		triggerSelectTrend:   {domain.StageDiscovery, domain.StageScripting},
		triggerApproveScript: {domain.StageScripting, domain.StageVoicing},
		triggerApproveAudio:  {domain.StageVoicing, domain.StageAssetConfig},
		triggerApproveAssets: {domain.StageAssetConfig, domain.StageRendering},
		triggerApproveVideo:  {domain.StageRendering, domain.StageComplete},
	}
	if len(transitions) != len(wanted) {
		t.Fatalf("transition table has %d rows, want %d", len(transitions), len(wanted))
	}
	for trig, stages := range wanted {
		tr, ok := transitions[trig]
		if !ok {
			t.Fatalf("missing transition for %q", trig)
		}
		if tr.from != stages[0] || tr.to != stages[1] {
			t.Fatalf("%q: %s -> %s, want %s -> %s", trig, tr.from, tr.to, stages[0], stages[1])
		}
		if tr.guard == nil {
			t.Fatalf("%q has no guard", trig)
		}
	}
}

func TestAdvanceRejectsWrongStage(t *testing.T) {
	s := newStore()
	s.script = domain.Script{Content: "Hello"}
	// the script guard would pass, but the pipeline is still in discovery
	if err := advance(s, triggerApproveScript); err == nil {
		t.Fatalf("advance accepted approve script from discovery")
	}
	if s.stage != domain.StageDiscovery {
		t.Fatalf("stage moved to %s on a rejected transition", s.stage)
	}
}

func TestAdvanceGuardBlocksMissingArtifact(t *testing.T) {
	s := newStore()
	s.stage = domain.StageVoicing
	if err := advance(s, triggerApproveAudio); err == nil {
		t.Fatalf("advance accepted approve audio without a track")
	}
	s.voice = &domain.VoiceTrack{AudioRef: "a1"}
	if err := advance(s, triggerApproveAudio); err != nil {
		t.Fatalf("advance rejected a valid approval: %v", err)
	}
	if s.stage != domain.StageAssetConfig {
		t.Fatalf("stage = %s, want asset_config", s.stage)
	}
}
