package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/internal/testutil"
	"learnpath-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(testutil.NewTestDB(t))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), "error: %v", err)
}
