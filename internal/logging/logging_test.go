package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"error":   zapcore.ErrorLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.DebugLevel,
		"verbose": zapcore.DebugLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelFromString(in), "level %q", in)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	t.Parallel()

	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("hello", "k", 1)
		l.With("component", "x").Warn("still fine")
	})
}
