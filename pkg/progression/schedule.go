package progression

import (
	"fmt"
	"strings"
	"time"
)

// BuildSchedule lays the topics end to end starting today. Every item is pending.
func BuildSchedule(specs []TopicSpec, today time.Time) ([]Item, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySchedule
	}

	start := Today(today)
	items := make([]Item, 0, len(specs))
	for i, spec := range specs {
		topic := strings.TrimSpace(spec.Topic)
		if topic == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrBlankTopic)
		}
		if spec.DurationDays <= 0 {
			return nil, fmt.Errorf("item %d (%s): %w", i, topic, ErrInvalidDuration)
		}

		end := start.AddDate(0, 0, spec.DurationDays)
		items = append(items, Item{
			Topic:        topic,
			DurationDays: spec.DurationDays,
			StartDate:    start.Format(DateLayout),
			EndDate:      end.Format(DateLayout),
			Status:       StatusPending,
		})
		start = end
	}
	return items, nil
}

// SplitForRegeneration returns the prefix kept verbatim and the topics that
// must be rescheduled, starting with the item at fromIndex. The rescheduled
// items are rebuilt as pending, which also resets a failed topic for a retry.
func SplitForRegeneration(items []Item, fromIndex int) ([]Item, []string, error) {
	if fromIndex < 0 || fromIndex >= len(items) {
		return nil, nil, ErrIndexOutOfRange
	}

	prefix := cloneItems(items[:fromIndex])
	topics := make([]string, 0, len(items)-fromIndex)
	for _, item := range items[fromIndex:] {
		topics = append(topics, item.Topic)
	}
	return prefix, topics, nil
}

// Rebuild appends a fresh schedule starting today after the kept prefix.
func Rebuild(prefix []Item, specs []TopicSpec, today time.Time) ([]Item, error) {
	if len(specs) == 0 {
		return cloneItems(prefix), nil
	}
	fresh, err := BuildSchedule(specs, today)
	if err != nil {
		return nil, err
	}
	return append(cloneItems(prefix), fresh...), nil
}
