package debugctx

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPrintfRespectsEnabledFlag(t *testing.T) {
	t.Parallel()

	buffer := &bytes.Buffer{}
	ctx := WithWriter(context.Background(), buffer)

	Printf(ctx, "hidden %d", 1)
	if buffer.Len() != 0 {
		t.Fatalf("disabled context must not write, got %q", buffer.String())
	}

	ctx = WithEnabled(ctx, true)
	Printf(ctx, "visible %d", 2)
	if got := buffer.String(); got != "debug: visible 2\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	buffer := &bytes.Buffer{}
	ctx := WithEnabled(WithWriter(context.Background(), buffer), true)

	logger := Logger(ctx)
	logger.Info("request sent", "method", "GET", "path", "/api/v1/monitor")

	if !strings.Contains(buffer.String(), "request sent") {
		t.Fatalf("expected log line, got %q", buffer.String())
	}
	if !strings.HasPrefix(buffer.String(), "debug: ") {
		t.Fatalf("expected debug prefix, got %q", buffer.String())
	}

	disabled := Logger(context.Background())
	disabled.Info("dropped")
	if strings.Contains(buffer.String(), "dropped") {
		t.Fatalf("disabled logger must discard output")
	}
}
