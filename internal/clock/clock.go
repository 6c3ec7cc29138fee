package clock

import "time"

// Clock provides the current time. Domain logic never reads the wall clock
// directly; a Clock is injected wherever time matters so replay and tests
// stay deterministic.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Advance moves it forward.
type Fixed struct {
	Current time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Current: t}
}

func (f *Fixed) Now() time.Time { return f.Current }

func (f *Fixed) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

// AdvanceDays moves the clock forward by whole calendar days.
func (f *Fixed) AdvanceDays(days int) {
	f.Current = f.Current.AddDate(0, 0, days)
}
