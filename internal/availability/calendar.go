package availability

import (
	"fmt"
	"sync/atomic"
	"time"
)

const DefaultMinNights = 4

// Calendar is the availability configuration shared by every surface that
// drives a selection. Callers only read it. The blackout table can be
// swapped whole with ReplaceBlackouts; each table is immutable once
// published, so the calendar is safe to share between goroutines.
type Calendar struct {
	blackouts atomic.Pointer[[]Blackout]
	minNights int
	location  *time.Location
	now       func() time.Time
}

type Option func(*Calendar)

// WithClock replaces the wall clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(calendar *Calendar) {
		if now != nil {
			calendar.now = now
		}
	}
}

// WithLocation sets the zone in which "today" is evaluated.
func WithLocation(location *time.Location) Option {
	return func(calendar *Calendar) {
		if location != nil {
			calendar.location = location
		}
	}
}

func WithMinNights(nights int) Option {
	return func(calendar *Calendar) {
		if nights > 0 {
			calendar.minNights = nights
		}
	}
}

func NewCalendar(blackouts []Blackout, options ...Option) (*Calendar, error) {
	calendar := &Calendar{
		minNights: DefaultMinNights,
		location:  time.Local,
		now:       time.Now,
	}
	if err := calendar.ReplaceBlackouts(blackouts); err != nil {
		return nil, err
	}
	for _, option := range options {
		option(calendar)
	}
	return calendar, nil
}

// ReplaceBlackouts validates and publishes a new blackout table. On error
// the current table stays in place.
func (calendar *Calendar) ReplaceBlackouts(blackouts []Blackout) error {
	owned := make([]Blackout, 0, len(blackouts))
	for _, blackout := range blackouts {
		checked, err := NewBlackout(blackout.From, blackout.To)
		if err != nil {
			return fmt.Errorf("blackout %s: %w", blackout, err)
		}
		owned = append(owned, checked)
	}
	sortBlackouts(owned)
	calendar.blackouts.Store(&owned)
	return nil
}

func (calendar *Calendar) table() []Blackout {
	return *calendar.blackouts.Load()
}

func (calendar *Calendar) Today() Date {
	return DateOf(calendar.now(), calendar.location)
}

func (calendar *Calendar) Location() *time.Location {
	return calendar.location
}

func (calendar *Calendar) MinNights() int {
	return calendar.minNights
}

// Blackouts returns a copy of the table sorted by start day.
func (calendar *Calendar) Blackouts() []Blackout {
	table := calendar.table()
	result := make([]Blackout, len(table))
	copy(result, table)
	return result
}

func (calendar *Calendar) IsUnavailable(day Date) bool {
	for _, blackout := range calendar.table() {
		if blackout.From.After(day) {
			return false
		}
		if blackout.Contains(day) {
			return true
		}
	}
	return false
}

// RangeHasUnavailable reports whether any day in [start, end] inclusive is
// blacked out. It compares interval bounds, so its cost follows the size of
// the table rather than the length of the range.
func (calendar *Calendar) RangeHasUnavailable(start Date, end Date) bool {
	for _, blackout := range calendar.table() {
		if blackout.From.After(end) {
			return false
		}
		if !blackout.To.Before(start) {
			return true
		}
	}
	return false
}

// checkStay holds the end-of-range rules shared by Pick and ValidateRange.
// start must be strictly before end.
func (calendar *Calendar) checkStay(start Date, end Date) (int, error) {
	nights := Nights(start, end)
	if nights < calendar.minNights {
		return nights, ErrMinStay
	}
	if calendar.RangeHasUnavailable(start, end) {
		return nights, ErrRangeUnavailable
	}
	return nights, nil
}
