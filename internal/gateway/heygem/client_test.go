package heygem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"autostream/internal/gateway"
)

func TestRender(t *testing.T) {
	var gotReq renderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(renderResponse{
			Success:    true,
			OutputRef:  "videos/out.mp4",
			VideoURL:   "http://cdn/videos/out.mp4",
			Duration:   31.5,
			Resolution: "1080x1920",
			FileSize:   123456,
		})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	result, err := c.Render(context.Background(), gateway.RenderRequest{
		AvatarRef:  "avatars/a.png",
		AudioRef:   "audio/v.mp3",
		LogoRef:    "logos/l.png",
		UseLipSync: true,
		Quality:    "high",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if gotReq.AvatarRef != "avatars/a.png" || gotReq.AudioRef != "audio/v.mp3" {
		t.Errorf("request refs = %+v", gotReq)
	}
	if !gotReq.LipSync || gotReq.Quality != "high" {
		t.Errorf("request knobs = %+v", gotReq)
	}
	if result.OutputRef != "videos/out.mp4" || result.Resolution != "1080x1920" {
		t.Errorf("result = %+v", result)
	}
	if result.DurationSeconds != 31.5 || result.ByteSize != 123456 {
		t.Errorf("result metrics = %+v", result)
	}
}

func TestRenderBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(renderResponse{Success: false, Error: "gpu busy"})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	_, err := c.Render(context.Background(), gateway.RenderRequest{AvatarRef: "a", AudioRef: "b"})
	if err == nil {
		t.Fatal("Render accepted a failed response")
	}
	if !strings.Contains(err.Error(), "gpu busy") {
		t.Errorf("err = %v, want backend message", err)
	}
}

func TestRenderRejectsEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(renderResponse{Success: true})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	if _, err := c.Render(context.Background(), gateway.RenderRequest{AvatarRef: "a", AudioRef: "b"}); err == nil {
		t.Fatal("Render accepted a response with no output")
	}
}

func TestRenderRequiresRefs(t *testing.T) {
	c := NewClient(Options{Logger: zerolog.Nop()})
	if _, err := c.Render(context.Background(), gateway.RenderRequest{AudioRef: "b"}); err == nil {
		t.Fatal("Render accepted a request without an avatar")
	}
	if _, err := c.Render(context.Background(), gateway.RenderRequest{AvatarRef: "a"}); err == nil {
		t.Fatal("Render accepted a request without audio")
	}
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	if !c.Available(context.Background()) {
		t.Fatal("Available = false for a healthy backend")
	}
}
