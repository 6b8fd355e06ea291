package handlers

import "net/http"

// Synthesis defaults used when the request leaves the knobs out.
const (
	defaultStability  = 0.5
	defaultSimilarity = 0.75
)

type generateAudioRequest struct {
	VoiceID    string   `json:"voice_id"`
	Stability  *float64 `json:"stability"`
	Similarity *float64 `json:"similarity"`
}

// ListVoices returns the narration voice catalog.
func (a *App) ListVoices(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{"voices": a.voices.Voices})
}

// GenerateAudio synthesizes a voiceover for the current script.
func (a *App) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var req generateAudioRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	stability, similarity := defaultStability, defaultSimilarity
	if req.Stability != nil {
		stability = *req.Stability
	}
	if req.Similarity != nil {
		similarity = *req.Similarity
	}
	track, err := c.GenerateAudio(r.Context(), req.VoiceID, stability, similarity)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"voice": track,
		"state": c.Snapshot(),
	})
}

// ApproveAudio advances voicing to asset configuration.
func (a *App) ApproveAudio(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	if err := c.ApproveAudio(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}
