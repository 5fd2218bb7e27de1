package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PathItemRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Duration int    `json:"duration" validate:"gt=0"`
}

// CreatePathRequest without items asks the content provider for a schedule.
type CreatePathRequest struct {
	Domain string            `json:"domain" validate:"required,max=255"`
	Items  []PathItemRequest `json:"items" validate:"dive"`
}

type PathItemResponse struct {
	Topic            string          `json:"topic"`
	DurationDays     int             `json:"duration_days"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Status           string          `json:"status"`
	AssessmentResult json.RawMessage `json:"assessment_result,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

type PathResponse struct {
	Id          uuid.UUID          `json:"id"`
	Domain      string             `json:"domain"`
	Items       []PathItemResponse `json:"items"`
	ActiveIndex int                `json:"active_index"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at"`
}

type GetAllPathResponse struct {
	Id          uuid.UUID `json:"id"`
	Domain      string    `json:"domain"`
	TotalTopics int       `json:"total_topics"`
	Completed   int       `json:"completed"`
	ActiveTopic string    `json:"active_topic,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegeneratePathRequest struct {
	FromIndex *int   `json:"from_index" validate:"required"`
	Reason    string `json:"reason" validate:"max=64"`
}

type UpdateItemNotesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

type PathStatsResponse struct {
	Total       int     `json:"total"`
	Completed   int     `json:"completed"`
	Pending     int     `json:"pending"`
	Overdue     int     `json:"overdue"`
	ProgressPct float64 `json:"progress_pct"`
	Streak      int     `json:"streak"`
}

type ExplainTopicResponse struct {
	Topic           string `json:"topic"`
	Explanation     string `json:"explanation"`
	ExplanationHtml string `json:"explanation_html"`
}

type TopicResource struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type TopicResourcesResponse struct {
	Topic     string          `json:"topic"`
	Resources []TopicResource `json:"resources"`
}

type SuggestPathRequest struct {
	Domain string `json:"domain" validate:"required,max=255"`
}

type SuggestPathResponse struct {
	Domain string            `json:"domain"`
	Items  []PathItemRequest `json:"items"`
}
