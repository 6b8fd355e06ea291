package handlers

import "net/http"

// Health reports the availability of every generation backend.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	health, err := a.svc.HealthCheck(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, health)
}
