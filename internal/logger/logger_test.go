package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := NewHandlerWithOptions("Embark", buf, &slog.HandlerOptions{Level: level})
	return slog.New(h), buf
}

func TestCustomHandler_Categories(t *testing.T) {
	tests := []struct {
		name     string
		attrType string
		want     string
	}{
		{"system default", "", "[SYS]"},
		{"database", "db", "[DB]"},
		{"http", "http", "[HTTP]"},
		{"quest", "quest", "[QUEST]"},
		{"error", "error", "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newTestLogger(slog.LevelDebug)
			if tt.attrType != "" {
				log.Info("hello", slog.String("type", tt.attrType))
			} else {
				log.Info("hello")
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "[Embark]")
		})
	}
}

func TestCustomHandler_LevelFilter(t *testing.T) {
	log, buf := newTestLogger(slog.LevelWarn)
	log.Info("quiet")
	log.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestCustomHandler_ErrorDetails(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)
	log.With(slog.String("user_id", "u-1")).Error("reward step failed",
		slog.String("type", "error"),
		slog.Any("error", errors.New("boom")),
	)

	out := buf.String()
	assert.Contains(t, out, "reward step failed")
	assert.Contains(t, out, ": boom")
	assert.Contains(t, out, "user_id=u-1")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
