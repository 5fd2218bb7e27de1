package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"learnpath-be/internal/dto"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/internal/testutil"
	"learnpath-be/pkg/cache"
	"learnpath-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPathService(t *testing.T, provider *testutil.FakeProvider) (*pathService, unitofwork.RepositoryFactory, *recordingPublisher) {
	t.Helper()
	factory := newFactory(t)
	publisher := &recordingPublisher{}
	svc := NewPathService(factory, provider, cache.NewMemoryStore(time.Hour), time.Hour, publisher, logger.NewNopLogger()).(*pathService)
	svc.now = fixedClock
	return svc, factory, publisher
}

func createPath(t *testing.T, svc *pathService, userId uuid.UUID, topics ...string) *dto.PathResponse {
	t.Helper()
	items := make([]dto.PathItemRequest, len(topics))
	for i, topic := range topics {
		items[i] = dto.PathItemRequest{Topic: topic, Duration: 2}
	}
	res, err := svc.Create(context.Background(), userId, &dto.CreatePathRequest{Domain: "Go", Items: items})
	require.NoError(t, err)
	return res
}

func TestPathService_CreateChainsDates(t *testing.T) {
	svc, _, publisher := newPathService(t, &testutil.FakeProvider{})
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreatePathRequest{
		Domain: "Backend",
		Items: []dto.PathItemRequest{
			{Topic: "HTTP", Duration: 3},
			{Topic: "SQL", Duration: 5},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "2024-03-10", res.Items[0].StartDate)
	assert.Equal(t, "2024-03-13", res.Items[0].EndDate)
	assert.Equal(t, "2024-03-13", res.Items[1].StartDate)
	assert.Equal(t, "2024-03-18", res.Items[1].EndDate)
	for _, item := range res.Items {
		assert.Equal(t, "pending", item.Status)
	}
	assert.Equal(t, 0, res.ActiveIndex)
	assert.Equal(t, []string{events.TypePathCreated}, publisher.Types())

	shown, err := svc.Show(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, res.Items, shown.Items)
}

func TestPathService_CreateRejectsInvalidInput(t *testing.T) {
	provider := &testutil.FakeProvider{}
	svc, _, _ := newPathService(t, provider)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreatePathRequest{
		Domain: "Go",
		Items:  []dto.PathItemRequest{{Topic: "Slices", Duration: 0}},
	})
	assertKind(t, err, apperror.KindValidation)

	_, err = svc.Create(context.Background(), uuid.New(), &dto.CreatePathRequest{
		Domain: "Go",
		Items:  []dto.PathItemRequest{{Topic: "  ", Duration: 2}},
	})
	assertKind(t, err, apperror.KindValidation)

	_, err = svc.Create(context.Background(), uuid.New(), &dto.CreatePathRequest{Domain: " "})
	assertKind(t, err, apperror.KindValidation)

	assert.Zero(t, provider.Calls())
}

func TestPathService_CreateAsksProviderWhenNoItems(t *testing.T) {
	provider := &testutil.FakeProvider{
		StructuredFn: testutil.Structured(`[{"topic":"Go basics","duration":3},{"topic":"Concurrency","duration":4.0}]`),
	}
	svc, _, _ := newPathService(t, provider)

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreatePathRequest{Domain: "Go"})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Concurrency", res.Items[1].Topic)
	assert.Equal(t, 4, res.Items[1].DurationDays)
	assert.Equal(t, "2024-03-17", res.Items[1].EndDate)
	assert.Contains(t, provider.Prompts()[0], `"Go"`)
}

func TestPathService_CreateProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) (json.RawMessage, error)
	}{
		{name: "provider error", fn: func(string) (json.RawMessage, error) { return nil, errors.New("status 503") }},
		{name: "empty schedule", fn: testutil.Structured(`[]`)},
		{name: "non positive duration", fn: testutil.Structured(`[{"topic":"A","duration":0}]`)},
		{name: "blank topic", fn: testutil.Structured(`[{"topic":"","duration":2}]`)},
		{name: "not a schedule", fn: testutil.Structured(`{"answer":"no"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, factory, _ := newPathService(t, &testutil.FakeProvider{StructuredFn: tt.fn})
			userId := uuid.New()

			_, err := svc.Create(context.Background(), userId, &dto.CreatePathRequest{Domain: "Go"})
			assertKind(t, err, apperror.KindProvider)

			paths, err := factory.NewUnitOfWork(context.Background()).LearningPathRepository().FindAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, paths)
		})
	}
}

func TestPathService_ShowChecksExistenceThenOwnership(t *testing.T) {
	svc, _, _ := newPathService(t, &testutil.FakeProvider{})
	owner := uuid.New()
	path := createPath(t, svc, owner, "A")

	_, err := svc.Show(context.Background(), owner, uuid.New())
	assertKind(t, err, apperror.KindNotFound)

	_, err = svc.Show(context.Background(), uuid.New(), path.Id)
	assertKind(t, err, apperror.KindAuthorization)

	err = svc.Delete(context.Background(), uuid.New(), path.Id)
	assertKind(t, err, apperror.KindAuthorization)

	require.NoError(t, svc.Delete(context.Background(), owner, path.Id))
	_, err = svc.Show(context.Background(), owner, path.Id)
	assertKind(t, err, apperror.KindNotFound)
}

func TestPathService_GetAllListsOnlyOwnPaths(t *testing.T) {
	svc, _, _ := newPathService(t, &testutil.FakeProvider{})
	owner := uuid.New()
	createPath(t, svc, owner, "A", "B")
	createPath(t, svc, uuid.New(), "C")

	res, err := svc.GetAll(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 2, res[0].TotalTopics)
	assert.Equal(t, "A", res[0].ActiveTopic)
}

func TestPathService_RegenerateAfterFailureRetriesTopic(t *testing.T) {
	provider := &testutil.FakeProvider{
		StructuredFn: testutil.Structured(`[{"topic":"B again","duration":1},{"topic":"C","duration":2}]`),
	}
	svc, _, publisher := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "A", "B", "C")

	svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 5) }
	from := 1
	res, err := svc.Regenerate(context.Background(), owner, path.Id, &dto.RegeneratePathRequest{FromIndex: &from, Reason: "failure"})
	require.NoError(t, err)

	require.Len(t, res.Items, 3)
	assert.Equal(t, path.Items[0], res.Items[0])
	assert.Equal(t, "B again", res.Items[1].Topic)
	assert.Equal(t, "2024-03-15", res.Items[1].StartDate)
	assert.Equal(t, "2024-03-16", res.Items[2].StartDate)
	assert.Equal(t, "pending", res.Items[1].Status)

	prompts := provider.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `["B", "C"]`)
	assert.Contains(t, publisher.Types(), events.TypePathRegenerated)
}

func TestPathService_RegenerateSkipStartsAtFromIndex(t *testing.T) {
	provider := &testutil.FakeProvider{
		StructuredFn: testutil.Structured(`[{"topic":"B","duration":3},{"topic":"C","duration":2}]`),
	}
	svc, _, _ := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "A", "B", "C")

	from := 1
	res, err := svc.Regenerate(context.Background(), owner, path.Id, &dto.RegeneratePathRequest{FromIndex: &from, Reason: "skip"})
	require.NoError(t, err)

	require.Len(t, res.Items, 3)
	assert.Equal(t, path.Items[0], res.Items[0])
	assert.Equal(t, "B", res.Items[1].Topic)
	assert.Equal(t, 3, res.Items[1].DurationDays)
	assert.Equal(t, "C", res.Items[2].Topic)
	assert.Contains(t, provider.Prompts()[0], `["B", "C"]`)
}

func TestPathService_RegenerateLastTopic(t *testing.T) {
	provider := &testutil.FakeProvider{StructuredFn: testutil.Structured(`[{"topic":"B","duration":4}]`)}
	svc, _, _ := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "A", "B")

	from := 1
	res, err := svc.Regenerate(context.Background(), owner, path.Id, &dto.RegeneratePathRequest{FromIndex: &from, Reason: "skip"})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, path.Items[0], res.Items[0])
	assert.Equal(t, 4, res.Items[1].DurationDays)
	assert.Equal(t, 1, provider.Calls())
	assert.Contains(t, provider.Prompts()[0], `["B"]`)
}

func TestPathService_RegenerateErrors(t *testing.T) {
	provider := &testutil.FakeProvider{StructuredFn: func(string) (json.RawMessage, error) { return nil, errors.New("timeout") }}
	svc, _, _ := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "A", "B")

	from := 2
	_, err := svc.Regenerate(context.Background(), owner, path.Id, &dto.RegeneratePathRequest{FromIndex: &from, Reason: "failure"})
	assertKind(t, err, apperror.KindValidation)

	from = 0
	_, err = svc.Regenerate(context.Background(), uuid.New(), path.Id, &dto.RegeneratePathRequest{FromIndex: &from})
	assertKind(t, err, apperror.KindAuthorization)

	_, err = svc.Regenerate(context.Background(), owner, path.Id, &dto.RegeneratePathRequest{FromIndex: &from, Reason: "failure"})
	assertKind(t, err, apperror.KindProvider)

	shown, err := svc.Show(context.Background(), owner, path.Id)
	require.NoError(t, err)
	assert.Equal(t, path.Items, shown.Items)
}

func TestPathService_UpdateItemNotes(t *testing.T) {
	svc, _, _ := newPathService(t, &testutil.FakeProvider{})
	owner := uuid.New()
	path := createPath(t, svc, owner, "A", "B")

	res, err := svc.UpdateItemNotes(context.Background(), owner, path.Id, 1, &dto.UpdateItemNotesRequest{Notes: "read chapter 3"})
	require.NoError(t, err)
	assert.Equal(t, "read chapter 3", res.Items[1].Notes)
	assert.Empty(t, res.Items[0].Notes)

	_, err = svc.UpdateItemNotes(context.Background(), owner, path.Id, 2, &dto.UpdateItemNotesRequest{Notes: "x"})
	assertKind(t, err, apperror.KindNotFound)

	_, err = svc.UpdateItemNotes(context.Background(), uuid.New(), path.Id, 0, &dto.UpdateItemNotesRequest{Notes: "x"})
	assertKind(t, err, apperror.KindAuthorization)
}

func TestPathService_StatsAcrossPaths(t *testing.T) {
	svc, _, _ := newPathService(t, &testutil.FakeProvider{})
	owner := uuid.New()
	createPath(t, svc, owner, "A", "B")
	createPath(t, svc, owner, "C")

	svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 3) }
	stats, err := svc.Stats(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 2, stats.Overdue)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0.0, stats.ProgressPct)

	empty, err := svc.Stats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, &dto.PathStatsResponse{}, empty)
}

func TestPathService_ExplainIsCached(t *testing.T) {
	provider := &testutil.FakeProvider{
		TextFn: func(prompt string) (string, error) { return "Goroutines are **cheap**.", nil },
	}
	svc, _, _ := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "Goroutines")

	first, err := svc.Explain(context.Background(), owner, path.Id, 0)
	require.NoError(t, err)
	second, err := svc.Explain(context.Background(), owner, path.Id, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Goroutines are **cheap**.", second.Explanation)
	assert.Equal(t, 1, provider.Calls())

	_, err = svc.Explain(context.Background(), owner, path.Id, 1)
	assertKind(t, err, apperror.KindNotFound)
}

func TestPathService_Resources(t *testing.T) {
	provider := &testutil.FakeProvider{
		StructuredFn: testutil.Structured(`[{"title":"Tour of Go","type":"course","description":"official"}]`),
	}
	svc, _, _ := newPathService(t, provider)
	owner := uuid.New()
	path := createPath(t, svc, owner, "Go")

	res, err := svc.Resources(context.Background(), owner, path.Id, 0)
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "Tour of Go", res.Resources[0].Title)

	_, err = svc.Resources(context.Background(), owner, path.Id, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.Calls())
}

func TestPathService_SuggestDoesNotPersist(t *testing.T) {
	provider := &testutil.FakeProvider{
		StructuredFn: testutil.Structured(`{"path":[{"topic":"Variables","duration":1}]}`),
	}
	svc, factory, _ := newPathService(t, provider)

	res, err := svc.Suggest(context.Background(), &dto.SuggestPathRequest{Domain: "Python"})
	require.NoError(t, err)
	assert.Equal(t, []dto.PathItemRequest{{Topic: "Variables", Duration: 1}}, res.Items)

	paths, err := factory.NewUnitOfWork(context.Background()).LearningPathRepository().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
