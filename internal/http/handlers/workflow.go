package handlers

import (
	"encoding/json"
	"net/http"
)

// WorkflowState returns the active project's current snapshot.
func (a *App) WorkflowState(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}

// WorkflowProgress returns the per-step progress view of the pipeline.
func (a *App) WorkflowProgress(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, c.Progress())
}

// WorkflowPrevious steps the pipeline one stage back without clearing
// artifacts.
func (a *App) WorkflowPrevious(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	if err := c.PreviousStep(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}

// WorkflowReset returns the pipeline to discovery with an empty store.
func (a *App) WorkflowReset(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	c.Reset()
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}

// WorkflowEvents streams pipeline snapshots as server-sent events until the
// client disconnects.
func (a *App) WorkflowEvents(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	snapshots, cancel := c.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	write := func(v any) bool {
		data, err := json.Marshal(v)
		if err != nil {
			return false
		}
		if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !write(c.Snapshot()) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-snapshots:
			if !open || !write(snap) {
				return
			}
		}
	}
}
