package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autostream/internal/domain"
	"autostream/internal/pipeline"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"busy", pipeline.ErrBusy, http.StatusConflict},
		{"wrapped busy", fmt.Errorf("op: %w", pipeline.ErrBusy), http.StatusConflict},
		{"not found", fmt.Errorf("project x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"validation", domain.Validationf("bad"), http.StatusBadRequest},
		{"upstream", domain.Upstreamf("boom"), http.StatusBadGateway},
		{"transport", domain.Transportf("timeout"), http.StatusGatewayTimeout},
		{"unclassified", fmt.Errorf("plain"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("%s: statusFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if err := decodeJSON(r, &dst); err != nil || dst.Name != "x" {
		t.Fatalf("decodeJSON = %v, dst = %+v", err, dst)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := decodeJSON(r, &dst); err != nil {
		t.Fatalf("decodeJSON rejected an empty body: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken"))
	err := decodeJSON(r, &dst)
	if err == nil {
		t.Fatal("decodeJSON accepted malformed JSON")
	}
	if domain.KindOf(err) != domain.ErrValidation {
		t.Errorf("kind = %s, want validation", domain.KindOf(err))
	}
}
