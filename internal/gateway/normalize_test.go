package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"autostream/internal/domain"
)

func TestNormalizeClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, domain.ErrTransport},
		{"canceled", context.Canceled, domain.ErrTransport},
		{"wrapped deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), domain.ErrTransport},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("refused")}, domain.ErrTransport},
		{"plain failure", errors.New("status 500"), domain.ErrUpstream},
	}
	for _, tc := range cases {
		got := Normalize("op", tc.err)
		if domain.KindOf(got) != tc.want {
			t.Errorf("%s: kind = %s, want %s", tc.name, domain.KindOf(got), tc.want)
		}
	}
}

func TestNormalizePassesClassifiedErrorsThrough(t *testing.T) {
	original := domain.Validationf("bad input")
	got := Normalize("op", fmt.Errorf("wrapped: %w", original))
	var derr *domain.Error
	if !errors.As(got, &derr) || derr != original {
		t.Fatalf("Normalize rewrapped an already classified error: %v", got)
	}
}

func TestKeyShapes(t *testing.T) {
	key := audioKey("rachel")
	if !strings.HasPrefix(key, "audio/rachel-") || !strings.HasSuffix(key, ".mp3") {
		t.Errorf("audioKey = %q", key)
	}
	if k := uploadKey(domain.AssetLogo, "brand.png"); !strings.HasPrefix(k, "logos/") || !strings.HasSuffix(k, "-brand.png") {
		t.Errorf("uploadKey = %q", k)
	}
	if k := uploadKey(domain.AssetAvatar, ""); !strings.HasSuffix(k, "-upload") {
		t.Errorf("uploadKey with empty filename = %q", k)
	}
}
