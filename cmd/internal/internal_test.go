package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := color.Error
	color.Error = &buf
	t.Cleanup(func() {
		color.Error = orig
	})
	return &buf
}

func TestEcho(t *testing.T) {
	buf := captureStderr(t)
	Echo("hello %s", "world")
	Echo("already terminated\n")
	assert.Equal(t, "hello world\nalready terminated\n", buf.String())
}

func TestHandleError(t *testing.T) {
	buf := captureStderr(t)
	assert.Equal(t, ExitSuccess, HandleError(nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, ExitError, HandleError(fmt.Errorf("loading: %w", io.ErrUnexpectedEOF)))
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "loading: unexpected EOF")
}

func TestCause(t *testing.T) {
	root := errors.New("root")
	assert.Equal(t, root, Cause(fmt.Errorf("a: %w", fmt.Errorf("b: %w", root))))
	assert.Equal(t, root, Cause(root))
}

func TestSetupLogging(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	var buf bytes.Buffer
	SetupLogging(&buf, false)
	slog.Debug("hidden")
	slog.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	log := SetupLogging(&buf, true)
	log.Debug("visible", "key", "value")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "key=value")
}
