package domain

import "fmt"

// Stage identifies one phase of the video creation pipeline. The ordering is
// total: a pipeline may only move forward one stage at a time, and only after
// the prerequisite artifact for the next stage exists.
type Stage int

const (
	StageDiscovery Stage = iota
	StageScripting
	StageVoicing
	StageAssetConfig
	StageRendering
	StageComplete
)

// StageCount is the number of pipeline stages including Complete.
const StageCount = int(StageComplete) + 1

var stageNames = [StageCount]string{
	"discovery",
	"scripting",
	"voicing",
	"asset_config",
	"rendering",
	"complete",
}

var stageDescriptions = [StageCount]string{
	"Discover trending topics in your niche",
	"Generate and refine your video script",
	"Create voiceover with AI narration",
	"Configure avatars, logos, and backgrounds",
	"Generate your faceless video",
	"Review and export your video",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= StageCount {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Description returns the user-facing summary shown for the stage.
func (s Stage) Description() string {
	if s < 0 || int(s) >= StageCount {
		return ""
	}
	return stageDescriptions[s]
}

// Valid reports whether the value is one of the declared stages.
func (s Stage) Valid() bool {
	return s >= StageDiscovery && s <= StageComplete
}

func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("domain: unknown stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range stageNames {
		if n == name {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("domain: unknown stage %q", name)
}
