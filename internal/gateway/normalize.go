package gateway

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/google/uuid"

	"autostream/internal/domain"
)

// Normalize folds an arbitrary backend error into the domain error shape.
// Errors already classified pass through untouched; network and deadline
// failures become transport errors; everything else is an upstream failure.
func Normalize(op string, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return derr
	}
	if isTransport(err) {
		return domain.Transportf("%s: %v", op, err)
	}
	return domain.Upstreamf("%s: %v", op, err)
}

func isTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func audioKey(voiceID string) string {
	return "audio/" + voiceID + "-" + uuid.NewString()[:8] + ".mp3"
}

func uploadKey(kind domain.AssetKind, filename string) string {
	name := filename
	if name == "" {
		name = "upload"
	}
	return string(kind) + "s/" + uuid.NewString()[:8] + "-" + name
}
