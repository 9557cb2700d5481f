package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uccmake/internal/adapters/logger"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a pretty logger writing to a buffer without ANSI codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	lg.SetFormat(domain.LogFormatPretty)
	return lg, buf
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name       string
		log        func(lg *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(lg *logger.Logger) { lg.Info("Analyzing...") },
			goldenName: "info_basic",
		},
		{
			name: "info with attributes",
			log: func(lg *logger.Logger) {
				lg.Info("Created backup of /ws/System/Core.u", "checksum", "00000000000000ff")
			},
			goldenName: "info_attrs",
		},
		{
			name:       "warn",
			log:        func(lg *logger.Logger) { lg.Warn("Wormhole.Wormhole : 'Foo' obscures 'Bar'") },
			goldenName: "warn_basic",
		},
		{
			name: "error chain with metadata",
			log: func(lg *logger.Logger) {
				err := zerr.With(
					zerr.Wrap(errors.New("permission denied"), "failed to remove artifact"),
					"path", "/ws/System/Core.u",
				)
				lg.Error(err)
			},
			goldenName: "error_chain",
		},
		{
			name:       "fatal",
			log:        func(lg *logger.Logger) { lg.Fatal(zerr.New("compiler executable not found")) },
			goldenName: "fatal_basic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_NilErrorIsIgnored(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)
	lg.Fatal(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_AutoFormatFallsBackToText(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Warn("stale backup removed", "path", "/ws/System/Core.u.bak")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="stale backup removed"`)
	assert.Contains(t, out, "path=/ws/System/Core.u.bak")
}

func TestLogger_TextFatalLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	lg.SetFormat(domain.LogFormatText)

	lg.Fatal(zerr.Wrap(domain.ErrMissingExecutable, "cannot compile"))

	out := buf.String()
	assert.Contains(t, out, "level=FATAL")
	assert.Contains(t, out, `msg="cannot compile"`)
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	lg.SetFormat(domain.LogFormatJSON)

	err := zerr.With(zerr.Wrap(domain.ErrMissingConfiguration, "workspace incomplete"), "path", "/ws/Core/make.ini")
	lg.Error(err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "workspace incomplete", record["msg"])

	errField, ok := record["error"].(map[string]any)
	require.True(t, ok, "zerr errors are logged as a group")
	assert.Equal(t, "workspace incomplete", errField["msg"])
	assert.Equal(t, "/ws/Core/make.ini", errField["path"])
}

func TestLogger_SetOutputKeepsFormat(t *testing.T) {
	lg := logger.New()
	lg.SetFormat(domain.LogFormatJSON)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg := logger.New()
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}
