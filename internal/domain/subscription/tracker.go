package subscription

import (
	"time"

	"github.com/example/payment-es/internal/domain/interval"
)

// RecurringTracker keeps the date of the last recurring action, truncated to
// midnight UTC, and derives the date the next one is due.
type RecurringTracker struct {
	Interval   interval.Interval `json:"interval"`
	LastAction time.Time         `json:"last_action"`
}

func NewTracker(iv interval.Interval, start time.Time) RecurringTracker {
	return RecurringTracker{Interval: iv, LastAction: midnight(start)}
}

// Track returns a tracker advanced to the given action date.
func (t RecurringTracker) Track(when time.Time) RecurringTracker {
	return RecurringTracker{Interval: t.Interval, LastAction: midnight(when)}
}

// EndDate is the day the current period runs out.
func (t RecurringTracker) EndDate() time.Time {
	return t.Interval.AddTo(t.LastAction)
}

func midnight(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
