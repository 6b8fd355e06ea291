package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"autostream/internal/domain"
)

const maxUploadBytes = 32 << 20

// UploadAsset stores one multipart upload in the slot named by the URL.
func (a *App) UploadAsset(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	kind := domain.AssetKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		a.writeError(w, domain.Validationf("unknown asset kind %q", kind))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, domain.Validationf("multipart field %q is required: %v", "file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, domain.Validationf("read upload: %v", err))
		return
	}

	ref, err := c.UploadAsset(r.Context(), kind, header.Filename, data)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"kind":  kind,
		"asset": ref,
		"state": c.Snapshot(),
	})
}

// ApproveAssets advances asset configuration to rendering.
func (a *App) ApproveAssets(w http.ResponseWriter, r *http.Request) {
	c, ok := a.active(w)
	if !ok {
		return
	}
	if err := c.ApproveAssets(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, c.Snapshot())
}
