package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createProjectRequest struct {
	Name string `json:"name"`
}

// CreateProject starts a new pipeline and makes it the active project.
func (a *App) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	c := a.projects.Create(req.Name)
	a.writeJSON(w, http.StatusCreated, c.Snapshot())
}

// ListProjects returns every project, newest first.
func (a *App) ListProjects(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{"projects": a.projects.List()})
}

// ExportProject writes the project's snapshot to storage and returns the
// retrieval URL.
func (a *App) ExportProject(w http.ResponseWriter, r *http.Request) {
	url, err := a.projects.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
