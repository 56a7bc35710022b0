// Package debugctx threads the CLI debug switch through context so any
// layer can emit wire-level diagnostics without carrying a logger around.
package debugctx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

type enabledKey struct{}
type writerKey struct{}

const linePrefix = "debug: "

// WithEnabled records whether debug output is wanted.
func WithEnabled(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, enabledKey{}, enabled)
}

func Enabled(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	enabled, _ := ctx.Value(enabledKey{}).(bool)
	return enabled
}

// WithWriter sets the destination for debug lines. A nil writer leaves
// the context untouched.
func WithWriter(ctx context.Context, writer io.Writer) context.Context {
	if writer == nil {
		return ctx
	}
	return context.WithValue(ctx, writerKey{}, writer)
}

func Writer(ctx context.Context) io.Writer {
	if ctx == nil {
		return nil
	}
	writer, _ := ctx.Value(writerKey{}).(io.Writer)
	return writer
}

// sink returns the active writer, or nil when debug output is off or
// no writer was attached.
func sink(ctx context.Context) io.Writer {
	if !Enabled(ctx) {
		return nil
	}
	return Writer(ctx)
}

func emit(writer io.Writer, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	_, _ = fmt.Fprintf(writer, "%s%s\n", linePrefix, line)
}

// Printf writes one formatted debug line, or nothing when the context
// carries no active debug sink.
func Printf(ctx context.Context, format string, args ...any) {
	writer := sink(ctx)
	if writer == nil {
		return
	}
	emit(writer, fmt.Sprintf(format, args...))
}

// Logger returns a structured logger bound to the context debug sink.
// When debug output is disabled the returned logger discards everything.
func Logger(ctx context.Context) logr.Logger {
	writer := sink(ctx)
	if writer == nil {
		return logr.Discard()
	}

	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			args = prefix + ": " + args
		}
		emit(writer, args)
	}, funcr.Options{})
}
