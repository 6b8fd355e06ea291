package handlers

import "net/http"

type generateScriptRequest struct {
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

type updateScriptRequest struct {
	Content string `json:"content"`
}

// GenerateScript drafts a script for the selected trend.
func (a *App) GenerateScript(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var req generateScriptRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	script, err := c.GenerateScript(r.Context(), req.Tone, req.Length)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"script": script,
		"state":  c.Snapshot(),
	})
}

// UpdateScript commits an edited script text.
func (a *App) UpdateScript(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var req updateScriptRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	script, err := c.UpdateScript(req.Content)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"script": script,
		"state":  c.Snapshot(),
	})
}

// ApproveScript advances scripting to voicing.
func (a *App) ApproveScript(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	if err := c.ApproveScript(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}
