package service

import (
	"context"
	"testing"
	"time"

	"learnpath-be/internal/pkg/logger"
	"learnpath-be/pkg/events"
	pktNats "learnpath-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	subject string
	durable string
	handler pktNats.EventHandler
}

func (s *fakeSource) Subscribe(_ context.Context, subject, durableName string, handler pktNats.EventHandler) error {
	s.subject, s.durable, s.handler = subject, durableName, handler
	return nil
}

func TestConsumerService_SubscribesToAllLearningEvents(t *testing.T) {
	source := &fakeSource{}
	svc := NewConsumerService(source, logger.NewNopLogger())

	require.NoError(t, svc.Consume(context.Background()))
	assert.Equal(t, "learning.>", source.subject)
	assert.Equal(t, activityDurable, source.durable)
	assert.NotNil(t, source.handler)
}

func TestConsumerService_LogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewConsumerService(&fakeSource{}, logger.NewFromZap(zap.New(core)))
	pathId := uuid.New()

	err := svc.Handle(context.Background(), events.NewTopicEvaluated(uuid.New(), pathId, 0, "Go", true, 4, 5))
	require.NoError(t, err)
	err = svc.Handle(context.Background(), events.BaseEvent{Type: "SOMETHING_ELSE", OccurredAt: time.Now()})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "ACTIVITY", entries[0].ContextMap()["module"])
	details := entries[0].ContextMap()["details"].(map[string]interface{})
	assert.Equal(t, events.TypeTopicCompleted, details["event"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
