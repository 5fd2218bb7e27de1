package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("PathService", "plan created", map[string]interface{}{"topics": 3})
	l.Warn("ChatService", "dedup skipped message", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "plan created", entries[0].Message)
	assert.Equal(t, "PathService", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"topics": 3}, entries[0].ContextMap()["details"])
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])
}

func TestZapLogger_ErrorKeepsReference(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	l := NewFromZap(zap.New(core))

	l.Debug("x", "ignored", nil)
	l.Error("AssessmentService", "evaluation failed", map[string]interface{}{"error": "timeout"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "timeout", entries[0].ContextMap()["error_ref"])
}
