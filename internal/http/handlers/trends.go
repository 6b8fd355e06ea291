package handlers

import (
	"net/http"

	"autostream/internal/domain"
)

type searchTrendsRequest struct {
	Query string `json:"query"`
	Niche string `json:"niche"`
	Limit int    `json:"limit"`
}

// SearchTrends runs a discovery search for the active project.
func (a *App) SearchTrends(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var req searchTrendsRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	trends, err := c.SearchTrends(r.Context(), req.Query, req.Niche, req.Limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"trends": trends,
		"state":  c.Snapshot(),
	})
}

// SelectTrend commits one of the searched trends and advances to scripting.
func (a *App) SelectTrend(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	var trend domain.Trend
	if err := decodeJSON(r, &trend); err != nil {
		a.writeError(w, err)
		return
	}
	if err := c.SelectTrend(trend); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}
