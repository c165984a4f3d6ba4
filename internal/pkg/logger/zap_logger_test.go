package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAttachesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Warn("note_service", "failed to record history", map[string]interface{}{"note_id": "abc"})
	l.Info("bootstrap", "ready", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "failed to record history", entries[0].Message)
	assert.Equal(t, "note_service", first["module"])
	assert.Equal(t, map[string]interface{}{"note_id": "abc"}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, map[string]interface{}{}, second["details"])
}

func TestZapLoggerErrorAddsReference(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Error("note_service", "boom", map[string]interface{}{"error": "db down"})

	entries := logs.FilterMessage("boom").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "db down", entries[0].ContextMap()["error_ref"])
}
