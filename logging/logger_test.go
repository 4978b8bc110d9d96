package logging

import (
	"bytes"
	"log/slog"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("d", "k", "v")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
	assert.Equal(t, NopLogger{}, OrNop(nil))

	s := NewSlogAdapter(nil)
	assert.Same(t, s, OrNop(s))
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler)).With("component", "bundler")

	l.Debug("fetched", "ref", "a.yaml")
	l.Warn("slow")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=fetched")
	assert.Contains(t, out, "component=bundler")
	assert.Contains(t, out, "ref=a.yaml")
	assert.Contains(t, out, "level=WARN")
}

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := log.New()
	base.SetOutput(&buf)
	base.SetLevel(log.DebugLevel)
	base.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := NewLogrusAdapter(base).With("stage", "validate")
	l.Info("checked", "issues", 2, "dangling")
	l.Error("failed")

	out := buf.String()
	assert.Contains(t, out, `level=info msg=checked`)
	assert.Contains(t, out, "issues=2")
	assert.Contains(t, out, "stage=validate")
	assert.Contains(t, out, "!BADKEY=dangling")
	assert.Contains(t, out, "level=error msg=failed")
}

func TestLogrusAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := log.New()
	base.SetOutput(&buf)
	base.SetLevel(log.InfoLevel)

	NewLogrusAdapter(base).Debug("hidden")
	assert.Empty(t, buf.String())
}
