package availability

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, raw string) Date {
	t.Helper()
	day, err := ParseISO(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return day
}

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time {
		return value
	}
}

// newMayClosureCalendar models a flat closed from 1 to 14 May 2026, with
// "today" on 1 April 2026.
func newMayClosureCalendar(t *testing.T) *Calendar {
	t.Helper()
	blackout, err := NewBlackout(mustDate(t, "2026-05-01"), mustDate(t, "2026-05-14"))
	if err != nil {
		t.Fatalf("new blackout: %v", err)
	}
	calendar, err := NewCalendar(
		[]Blackout{blackout},
		WithClock(fixedClock(time.Date(2026, time.April, 1, 10, 30, 0, 0, time.UTC))),
		WithLocation(time.UTC),
	)
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	return calendar
}
