// Package ioctx carries a command's output streams on a context, so code
// deep in a call chain can write to the user without global state.
package ioctx

import (
	"context"
	"io"
)

type streamKey int

const (
	stdoutKey streamKey = iota
	stderrKey
)

func WithStdout(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey, w)
}

func WithStderr(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey, w)
}

// Stdout returns the writer set by WithStdout, or io.Discard.
func Stdout(ctx context.Context) io.Writer {
	return stream(ctx, stdoutKey)
}

// Stderr returns the writer set by WithStderr, or io.Discard.
func Stderr(ctx context.Context) io.Writer {
	return stream(ctx, stderrKey)
}

func stream(ctx context.Context, key streamKey) io.Writer {
	if w, ok := ctx.Value(key).(io.Writer); ok && w != nil {
		return w
	}
	return io.Discard
}
