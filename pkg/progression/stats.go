package progression

import (
	"math"
	"time"
)

type Stats struct {
	Total       int
	Completed   int
	Pending     int
	Overdue     int
	ProgressPct float64
	Streak      int
}

// ComputeStats summarises items across all of a user's plans. Items with a
// missing or invalid end date are treated as ending today.
func ComputeStats(items []Item, now time.Time) Stats {
	today := Today(now)
	stats := Stats{Total: len(items)}
	completedDays := make(map[string]struct{})

	for _, item := range items {
		end := parseDateOr(item.EndDate, today)
		if effectiveStatus(item) == StatusCompleted {
			stats.Completed++
			completedDays[end.Format(DateLayout)] = struct{}{}
			continue
		}
		if end.Before(today) {
			stats.Overdue++
		} else {
			stats.Pending++
		}
	}

	if stats.Total > 0 {
		pct := float64(stats.Completed) * 100 / float64(stats.Total)
		stats.ProgressPct = math.Round(pct*100) / 100
	}

	day := today
	for {
		if _, ok := completedDays[day.Format(DateLayout)]; !ok {
			break
		}
		stats.Streak++
		day = day.AddDate(0, 0, -1)
	}
	return stats
}

func parseDateOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := time.ParseInLocation(DateLayout, value, fallback.Location())
	if err != nil {
		return fallback
	}
	return t
}
