// ABOUTME: Tests for the logrus-backed logger
// ABOUTME: Captures output in a buffer and checks levels and fields land in it

package logrus

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerEmitsMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", JSON: true, Output: &buf})

	l.Info("feed updated", map[string]interface{}{"feed_id": 7})

	out := buf.String()
	assert.Contains(t, out, "feed updated")
	assert.Contains(t, out, `"feed_id":7`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Output: &buf})

	l.Debug("invisible", nil)
	l.Info("also invisible", nil)
	assert.Empty(t, buf.String())

	l.Warn("visible", nil)
	assert.Contains(t, buf.String(), "visible")
}

func TestLoggerNilFieldsAreFine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})

	assert.NotPanics(t, func() {
		l.Error("bare message", nil)
	})
	assert.Contains(t, buf.String(), "bare message")
}

func TestLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "nonsense", Output: &buf})

	l.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	l.Info("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}
