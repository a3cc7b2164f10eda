package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "production", "development", ""} {
		l, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, l.SugaredLogger, mode)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "alert")

	l.Info("alert created", "alert_id", 7)
	l.Warn("duplicate alert", "subject_id", 3)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "alert created", entries[0].Message)
		assert.Equal(t, "alert", entries[0].ContextMap()["component"])
		assert.EqualValues(t, 7, entries[0].ContextMap()["alert_id"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Debug("ignored")
	l.Error("ignored", "k", "v")
	l.Sync()
}
