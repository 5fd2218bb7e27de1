package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"learnpath-be/internal/entity"
	"learnpath-be/pkg/progression"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningPathMapper_KeepsItemState(t *testing.T) {
	m := NewLearningPathMapper()
	path := &entity.LearningPath{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Domain: "Backend",
		Items: []progression.Item{
			{Topic: "HTTP", DurationDays: 2, StartDate: "2024-01-01", EndDate: "2024-01-03", Status: progression.StatusCompleted, AssessmentResult: json.RawMessage(`{"score":9}`)},
			{Topic: "SQL", DurationDays: 1, StartDate: "2024-01-03", EndDate: "2024-01-04", Status: progression.StatusPending, Notes: "joins"},
		},
		CreatedAt: time.Now(),
	}

	back := m.ToEntity(m.ToModel(path))
	require.NotNil(t, back)
	assert.Equal(t, path.Items, back.Items)
	assert.Nil(t, back.UpdatedAt)
}

func TestPathItemJSONOmitsEmptyResult(t *testing.T) {
	m := NewLearningPathMapper()
	model := m.ToModel(&entity.LearningPath{Items: []progression.Item{{Topic: "Go", Status: progression.StatusPending}}})

	raw, err := json.Marshal(model.Items)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "assessment_result")
	assert.NotContains(t, string(raw), "notes")
}
