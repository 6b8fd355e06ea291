package handlers

import "net/http"

type generateVideoRequest struct {
	UseLipSync *bool  `json:"use_lip_sync"`
	Quality    string `json:"quality"`
}

// GenerateVideo renders the final video from the configured assets.
func (a *App) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var req generateVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	useLipSync := true
	if req.UseLipSync != nil {
		useLipSync = *req.UseLipSync
	}
	video, err := c.GenerateVideo(r.Context(), useLipSync, req.Quality)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"video": video,
		"state": c.Snapshot(),
	})
}

// ApproveVideo advances rendering to complete.
func (a *App) ApproveVideo(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	if err := c.ApproveVideo(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}
