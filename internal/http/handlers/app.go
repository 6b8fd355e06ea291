// Package handlers exposes the pipeline over HTTP. Handlers translate JSON
// and multipart requests into coordinator calls and map the error taxonomy
// onto status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"autostream/internal/domain"
	"autostream/internal/gateway"
	"autostream/internal/pipeline"
	"autostream/internal/projects"
	"autostream/internal/voices"
)

const maxJSONBody = 1 << 20

// App is the dependency container shared by every handler.
type App struct {
	projects *projects.Registry
	svc      gateway.Service
	voices   *voices.Catalog
	log      zerolog.Logger
}

// NewApp wires the handler container.
func NewApp(reg *projects.Registry, svc gateway.Service, catalog *voices.Catalog, log zerolog.Logger) *App {
	return &App{
		projects: reg,
		svc:      svc,
		voices:   catalog,
		log:      log.With().Str("component", "http").Logger(),
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error().Err(err).Msg("encode response")
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	a.writeJSON(w, statusFor(err), map[string]string{
		"error": err.Error(),
		"kind":  string(domain.KindOf(err)),
	})
}

// statusFor maps the error taxonomy onto HTTP status codes. Busy rejections
// are conflicts, not validation failures, so clients can retry them.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	switch domain.KindOf(err) {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// active resolves the active project's coordinator, writing the error
// response itself when there is none.
func (a *App) active(w http.ResponseWriter) (*pipeline.Coordinator, bool) {
	c, err := a.projects.Active()
	if err != nil {
		a.writeError(w, err)
		return nil, false
	}
	return c, true
}

// decodeJSON fills dst from the request body. An empty body leaves dst at its
// zero value so endpoints with all-optional fields accept bare POSTs.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return domain.Validationf("invalid request body: %v", err)
}
