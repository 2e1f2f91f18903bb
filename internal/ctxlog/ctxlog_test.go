package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected log line, got %q", buf.String())
	}
}

func TestFromContext_MissingLoggerDiscards(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatalf("expected a usable logger")
	}
	l.Info("dropped")
}
