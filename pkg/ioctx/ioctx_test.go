package ioctx

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreams(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, io.Discard, Stdout(ctx))
	assert.Equal(t, io.Discard, Stderr(ctx))

	var out, errOut strings.Builder
	ctx = WithStdout(ctx, &out)
	ctx = WithStderr(ctx, &errOut)
	assert.Same(t, &out, Stdout(ctx))
	assert.Same(t, &errOut, Stderr(ctx))
}
