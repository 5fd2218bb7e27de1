// Package progression holds the learning path state machine. It is pure: no
// storage, no provider calls, and the current day is always passed in.
package progression

import (
	"encoding/json"
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var (
	ErrEmptySchedule   = errors.New("schedule must contain at least one topic")
	ErrInvalidDuration = errors.New("duration must be a positive number of days")
	ErrBlankTopic      = errors.New("topic must not be blank")
	ErrIndexOutOfRange = errors.New("topic index out of range")
)

// Item is one scheduled topic. EndDate is always StartDate + DurationDays.
type Item struct {
	Topic            string
	DurationDays     int
	StartDate        string
	EndDate          string
	Status           Status
	AssessmentResult json.RawMessage
	Notes            string
}

// TopicSpec is the input to scheduling: a topic and how many days it takes.
type TopicSpec struct {
	Topic        string `json:"topic"`
	DurationDays int    `json:"duration"`
}

// Today truncates t to midnight in its own location.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ActiveIndex returns the index of the first pending item, or -1.
func ActiveIndex(items []Item) int {
	for i, item := range items {
		if effectiveStatus(item) == StatusPending {
			return i
		}
	}
	return -1
}

func effectiveStatus(item Item) Status {
	if item.Status == "" {
		return StatusPending
	}
	return item.Status
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
