package progression

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestBuildSchedule_ChainsDates(t *testing.T) {
	items, err := BuildSchedule([]TopicSpec{
		{Topic: "Go basics", DurationDays: 3},
		{Topic: "Concurrency", DurationDays: 2},
		{Topic: "  Testing  ", DurationDays: 1},
	}, fixedNow)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "2024-03-10", items[0].StartDate)
	assert.Equal(t, "2024-03-13", items[0].EndDate)
	assert.Equal(t, "2024-03-13", items[1].StartDate)
	assert.Equal(t, "2024-03-15", items[1].EndDate)
	assert.Equal(t, "2024-03-15", items[2].StartDate)
	assert.Equal(t, "2024-03-16", items[2].EndDate)
	assert.Equal(t, "Testing", items[2].Topic)

	for i, item := range items {
		assert.Equal(t, StatusPending, item.Status)
		assert.Nil(t, item.AssessmentResult)
		if i > 0 {
			assert.Equal(t, items[i-1].EndDate, item.StartDate)
		}
	}
}

func TestBuildSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		specs []TopicSpec
		want  error
	}{
		{name: "empty", specs: nil, want: ErrEmptySchedule},
		{name: "zero duration", specs: []TopicSpec{{Topic: "A", DurationDays: 0}}, want: ErrInvalidDuration},
		{name: "negative duration", specs: []TopicSpec{{Topic: "A", DurationDays: 2}, {Topic: "B", DurationDays: -1}}, want: ErrInvalidDuration},
		{name: "blank topic", specs: []TopicSpec{{Topic: "   ", DurationDays: 1}}, want: ErrBlankTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSchedule(tt.specs, fixedNow)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPassed(t *testing.T) {
	tests := []struct {
		score, outOf float64
		want         bool
	}{
		{7, 10, true},
		{6, 10, false},
		{7, 20, true},
		{6.5, 12, false},
		{4, 5, true},
		{3, 5, false},
		{0, 0, false},
		{5, 0, false},
		{7, 7, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Passed(tt.score, tt.outOf), "score=%v outOf=%v", tt.score, tt.outOf)
	}
}

func threeItems(t *testing.T) []Item {
	t.Helper()
	items, err := BuildSchedule([]TopicSpec{
		{Topic: "A", DurationDays: 1},
		{Topic: "B", DurationDays: 1},
		{Topic: "C", DurationDays: 1},
	}, fixedNow)
	require.NoError(t, err)
	return items
}

func TestApplyEvaluation_PassCompletesAndActivatesNext(t *testing.T) {
	items := threeItems(t)
	items[1].Status = StatusFailed
	doc := json.RawMessage(`{"score":8,"outOf":10}`)

	out, err := ApplyEvaluation(items, 0, true, doc)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, out[0].Status)
	assert.JSONEq(t, string(doc), string(out[0].AssessmentResult))
	assert.Equal(t, StatusPending, out[1].Status)
	assert.Equal(t, StatusPending, out[2].Status)
	assert.Equal(t, 1, ActiveIndex(out))

	// input untouched
	assert.Equal(t, StatusPending, items[0].Status)
	assert.Equal(t, StatusFailed, items[1].Status)
}

func TestApplyEvaluation_PassResetsCompletedNextItem(t *testing.T) {
	items := threeItems(t)
	items[1].Status = StatusCompleted
	items[2].Status = StatusCompleted

	out, err := ApplyEvaluation(items, 0, true, nil)
	require.NoError(t, err)

	assert.Equal(t, []Status{StatusCompleted, StatusPending, StatusCompleted},
		[]Status{out[0].Status, out[1].Status, out[2].Status})
	assert.Equal(t, 1, ActiveIndex(out))
}

func TestApplyEvaluation_FailChangesOnlyTarget(t *testing.T) {
	items := threeItems(t)

	out, err := ApplyEvaluation(items, 1, false, json.RawMessage(`{"score":2}`))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, out[0].Status)
	assert.Equal(t, StatusFailed, out[1].Status)
	assert.Equal(t, StatusPending, out[2].Status)
	assert.Equal(t, items[0], out[0])
	assert.Equal(t, items[2], out[2])
}

func TestApplyEvaluation_LastItem(t *testing.T) {
	items := threeItems(t)
	out, err := ApplyEvaluation(items, 2, true, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, out[2].Status)
	assert.Len(t, out, 3)
}

func TestApplyEvaluation_OutOfRange(t *testing.T) {
	items := threeItems(t)
	_, err := ApplyEvaluation(items, 3, true, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ApplyEvaluation(items, -1, true, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSplitForRegeneration(t *testing.T) {
	items := threeItems(t)
	items[0].Status = StatusCompleted
	items[0].AssessmentResult = json.RawMessage(`{"score":9}`)

	t.Run("failed topic leads the remainder", func(t *testing.T) {
		failed := cloneItems(items)
		failed[1].Status = StatusFailed
		prefix, topics, err := SplitForRegeneration(failed, 1)
		require.NoError(t, err)
		assert.Equal(t, items[:1], prefix)
		assert.Equal(t, []string{"B", "C"}, topics)
	})

	t.Run("remainder always starts at fromIndex", func(t *testing.T) {
		prefix, topics, err := SplitForRegeneration(items, 2)
		require.NoError(t, err)
		assert.Equal(t, items[:2], prefix)
		assert.Equal(t, []string{"C"}, topics)
	})

	t.Run("from the first item", func(t *testing.T) {
		prefix, topics, err := SplitForRegeneration(items, 0)
		require.NoError(t, err)
		assert.Empty(t, prefix)
		assert.Equal(t, []string{"A", "B", "C"}, topics)
	})

	t.Run("out of range", func(t *testing.T) {
		_, _, err := SplitForRegeneration(items, 3)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestRebuild_KeepsPrefixAndSchedulesFromToday(t *testing.T) {
	items := threeItems(t)
	items[0].Status = StatusCompleted
	prefix, _, err := SplitForRegeneration(items, 1)
	require.NoError(t, err)

	later := fixedNow.AddDate(0, 0, 5)
	out, err := Rebuild(prefix, []TopicSpec{{Topic: "B again", DurationDays: 2}, {Topic: "C", DurationDays: 1}}, later)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, items[0], out[0])
	assert.Equal(t, "2024-03-15", out[1].StartDate)
	assert.Equal(t, "2024-03-17", out[1].EndDate)
	assert.Equal(t, out[1].EndDate, out[2].StartDate)
	for _, item := range out[1:] {
		assert.Equal(t, StatusPending, item.Status)
		assert.Nil(t, item.AssessmentResult)
	}
}

func TestSetNotes(t *testing.T) {
	items := threeItems(t)
	out, err := SetNotes(items, 2, "read chapter 4")
	require.NoError(t, err)
	assert.Equal(t, "read chapter 4", out[2].Notes)
	assert.Empty(t, items[2].Notes)

	_, err = SetNotes(items, 5, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestComputeStats(t *testing.T) {
	items := []Item{
		{Topic: "done today", EndDate: "2024-03-10", Status: StatusCompleted},
		{Topic: "done yesterday", EndDate: "2024-03-09", Status: StatusCompleted},
		{Topic: "done three days ago", EndDate: "2024-03-07", Status: StatusCompleted},
		{Topic: "late", EndDate: "2024-03-01", Status: StatusPending},
		{Topic: "failed late", EndDate: "2024-03-05", Status: StatusFailed},
		{Topic: "upcoming", EndDate: "2024-03-20", Status: StatusPending},
		{Topic: "no status", EndDate: "2024-03-10"},
		{Topic: "no end date", Status: StatusPending},
	}

	stats := ComputeStats(items, fixedNow)

	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 2, stats.Overdue)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, stats.Total, stats.Completed+stats.Overdue+stats.Pending)
	assert.InDelta(t, 37.5, stats.ProgressPct, 0.001)
	assert.Equal(t, 2, stats.Streak)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, fixedNow)
	assert.Equal(t, Stats{}, stats)
}

func TestComputeStats_NoStreakWithoutToday(t *testing.T) {
	stats := ComputeStats([]Item{{EndDate: "2024-03-09", Status: StatusCompleted}}, fixedNow)
	assert.Equal(t, 0, stats.Streak)
	assert.InDelta(t, 100.0, stats.ProgressPct, 0.001)
}
